package pipeline

import (
	"fmt"
	"image"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// RenderArtifacts colours the placements of res in place and encodes every
// requested format. The canvas is only painted when a raster format needs
// it; the returned image is nil otherwise.
func RenderArtifacts(res *layout.Result, faces *fonts.Faces, opts Options) (*image.RGBA, map[string][]byte, error) {
	if err := render.Colorize(res.Placements, opts.palette, opts.ColorMode, opts.Seed); err != nil {
		return nil, nil, err
	}

	var img *image.RGBA
	if opts.NeedsRaster() {
		var err error
		img, err = render.Render(res, faces,
			render.WithBackground(opts.background),
			render.WithScale(opts.Scale))
		if err != nil {
			return nil, nil, err
		}
	}

	artifacts := make(map[string][]byte, len(opts.formats))
	for _, format := range opts.formats {
		var data []byte
		var err error

		switch format {
		case sink.FormatPNG:
			data, err = sink.RenderPNG(img)
		case sink.FormatJPEG:
			data, err = sink.RenderJPEG(img, sink.WithQuality(opts.JPEGQuality))
		case sink.FormatSVG:
			svgOpts := []sink.SVGOption{
				sink.WithSVGBackground(opts.background),
				sink.WithSVGFont(faces.Font()),
			}
			if opts.EmbedFont {
				svgOpts = append(svgOpts, sink.WithEmbeddedFont())
			}
			data = sink.RenderSVG(res, svgOpts...)
		case sink.FormatJSON:
			data, err = sink.RenderJSON(res,
				sink.WithJSONBackground(opts.background),
				sink.WithJSONPalette(opts.palette.Name),
				sink.WithJSONSeed(opts.Seed),
				sink.WithJSONFont(faces.Font().Name()))
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[string(format)] = data
	}
	return img, artifacts, nil
}
