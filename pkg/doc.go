// Package pkg provides the libraries behind the wordcloud generator.
//
// # Overview
//
// A word cloud is built in a straight line of stages, each in its own
// package. The CLI, the watch view and the HTTP server all run the same
// stages through [pipeline]:
//
//	raw text
//	   ↓
//	[text] normalize (NFKC, upper case, symbol mapping)
//	   ↓
//	[text/segment] morphological analysis or UAX #29 words
//	   ↓
//	[text] part-of-speech filter
//	   ↓
//	[freq] count, drop stopwords, rank, limit
//	   ↓
//	[mask] optional bitmap of forbidden cells
//	   ↓
//	[layout] spiral placement, largest term first
//	   ↓
//	[render] colours, PNG / JPEG / SVG / JSON
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Text:      "go go gopher cloud",
//	    Segmenter: "words",
//	    Width:     800,
//	    Height:    600,
//	    Formats:   []string{"png", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("cloud.png", res.Artifacts["png"], 0o644)
//
// # Main Packages
//
// [pipeline] - Options, the cached Runner and the stage helpers. Used by every
// entry point so they behave the same.
//
// [text] and [text/segment] - Normalization, segmenters (kagome IPA
// dictionary for Japanese, UAX #29 for whitespace languages) and the
// content-word filter.
//
// [freq] - Frequency tables with deterministic tie-breaking.
//
// [mask] - Mask images to placement bitmaps.
//
// [layout] - The spiral layout engine with box or pixel collision.
//
// [fonts] - Font discovery, loading and rasterization.
//
// [render] - Palettes and colouring; [render/sink] encodes the outputs.
//
// [cache] - File, memory and Redis caches plus the key scheme.
//
// [config] - TOML/JSON settings with defaults and validation.
//
// [errors] - Coded errors and non-fatal warnings.
//
// [observability] - Hooks for pipeline and HTTP events.
//
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/pipeline
// [text]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/text
// [text/segment]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/text/segment
// [freq]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/freq
// [mask]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/mask
// [layout]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/layout
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/fonts
// [render]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/render/sink
// [cache]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wordcloud/pkg/observability
package pkg
