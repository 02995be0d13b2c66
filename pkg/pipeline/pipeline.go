// Package pipeline provides the complete word-cloud pipeline.
//
// The CLI, the HTTP server and the interactive watch mode all run the same
// stages through a [Runner], so a cloud generated in one place is identical
// to one generated in another:
//
//  1. Tokenize: normalize the text, segment it, filter by part of speech and
//     aggregate term frequencies
//  2. Layout: load the mask and font, then pack the terms on a spiral
//  3. Render: colour the placements and encode the requested formats
//
// Each stage is cached on a content hash of its inputs, so regenerating an
// unchanged cloud costs a few cache reads.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.FromConfig(cfg)
//	opts.InputPath = "content/sample_text.txt"
//	opts.Formats = []string{"png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Input problems (missing text, mask or font) never fail a run; they are
// collected in Result.Warnings and the run degrades gracefully.
package pipeline

import (
	"image"
	"image/color"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/mask"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
	"github.com/matzehuels/wordcloud/pkg/text"
	"github.com/matzehuels/wordcloud/pkg/text/segment"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 800

	// DefaultMaxWords bounds the number of distinct terms.
	DefaultMaxWords = 100

	// DefaultBackground is the canvas colour.
	DefaultBackground = "white"
)

// DefaultFormat is produced when no format is requested.
const DefaultFormat = sink.FormatPNG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
//
// Zero values take the defaults above, except Margin and Vertical whose zero
// is meaningful (no gap, never rotate); [FromConfig] fills those from the
// configuration.
type Options struct {
	// Text options
	Text      string   `json:"text,omitempty"`
	InputPath string   `json:"-"`
	Segmenter string   `json:"segmenter,omitempty"`
	Stopwords []string `json:"stopwords,omitempty"`
	MaxWords  int      `json:"max_words,omitempty"`

	// PartsOfSpeech is the category allow-set (English or IPA names).
	PartsOfSpeech []string `json:"parts_of_speech,omitempty"`

	// Mask options. MaskImage holds an encoded image (base64 in JSON) and
	// takes precedence over MaskPath.
	MaskPath    string `json:"-"`
	MaskImage   []byte `json:"mask_image,omitempty"`
	Polarity    string `json:"polarity,omitempty"`
	Threshold   int    `json:"threshold,omitempty"`
	UseMaskSize bool   `json:"use_mask_size,omitempty"`

	// Layout options
	Width         int           `json:"width,omitempty"`
	Height        int           `json:"height,omitempty"`
	FontPath      string        `json:"-"`
	MinFontSize   int           `json:"min_font_size,omitempty"`
	MaxFontSize   int           `json:"max_font_size,omitempty"`
	Scaling       string        `json:"scaling,omitempty"`
	Margin        int           `json:"margin"`
	Vertical      float64       `json:"vertical"`
	Collision     string        `json:"collision,omitempty"`
	Seed          uint64        `json:"seed,omitempty"`
	MaxIterations int           `json:"-"`
	TermTimeout   time.Duration `json:"-"`

	// Render options
	Background  string   `json:"background_color,omitempty"`
	Colormap    string   `json:"colormap,omitempty"`
	ColorMode   string   `json:"color_mode,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Scale       int      `json:"scale,omitempty"`
	EmbedFont   bool     `json:"embed_font,omitempty"`
	JPEGQuality int      `json:"jpeg_quality,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Font, when set, is used instead of resolving FontPath.
	Font *fonts.Font `json:"-"`

	// Parsed forms, filled by ValidateAndSetDefaults.
	allow      []segment.Category
	background color.RGBA
	palette    render.Palette
	polarity   mask.Polarity
	collision  layout.Collision
	scaling    layout.Scaling
	formats    []sink.Format

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// FromConfig builds options from a loaded configuration.
func FromConfig(cfg *config.Config) Options {
	wc := cfg.WordCloud
	return Options{
		InputPath:   wc.Input,
		Segmenter:   wc.Segmenter,
		Stopwords:   wc.Stopwords,
		MaxWords:    wc.MaxWords,
		MaskPath:    wc.MaskImage,

		PartsOfSpeech: wc.PartsOfSpeech,

		Polarity:    wc.Polarity,
		Threshold:   wc.Threshold,
		UseMaskSize: wc.UseMaskSize,
		Width:       wc.Width,
		Height:      wc.Height,
		FontPath:    wc.FontPath,
		MinFontSize: wc.MinFontSize,
		MaxFontSize: wc.MaxFontSize,
		Scaling:     wc.Scaling,
		Margin:      wc.Margin,
		Vertical:    wc.Vertical,
		Collision:   wc.Collision,
		Seed:        wc.Seed,
		TermTimeout: wc.TermTimeoutDuration(),
		Background:  wc.BackgroundColor,
		Colormap:    wc.Colormap,
		ColorMode:   wc.ColorMode,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Width and Height are the achieved canvas size. They differ from the
	// request when UseMaskSize adopts the mask's native size.
	Width, Height int

	// Table is the ranked term frequency table.
	Table freq.Table

	// Layout holds the placements, coloured, and the skipped terms.
	Layout *layout.Result

	// Image is the rendered canvas. It is nil when no raster format was
	// requested or every artifact came from the cache.
	Image *image.RGBA

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists the non-fatal input problems of the run.
	Warnings []errors.Warning

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TextChars    int
	TokenCount   int
	TermCount    int
	Placed       int
	Skipped      int
	Candidates   int
	FontName     string
	Mask         *mask.Stats
	TokenizeTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TokensHit bool // Whether the frequency table came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.setDefaults()

	if err := errors.ValidatePositive("max_words", o.MaxWords); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := segmenterName(o.Segmenter); err != nil {
		return err
	}

	var err error
	if o.allow, err = segment.ParseCategories(o.PartsOfSpeech); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parts_of_speech")
	}
	if len(o.allow) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "parts_of_speech cannot be empty")
	}
	if o.background, err = render.ParseColor(o.Background); err != nil {
		return err
	}
	if o.palette, err = render.LookupPalette(o.Colormap); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("color_mode", o.ColorMode, render.ColorRandom, render.ColorRank); err != nil {
		return err
	}
	if o.polarity, err = mask.ParsePolarity(o.Polarity); err != nil {
		return err
	}
	if o.Threshold < 0 || o.Threshold > 255 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must be in [0, 255], got %d", o.Threshold)
	}
	if o.collision, err = layout.ParseCollision(o.Collision); err != nil {
		return err
	}
	if o.scaling, err = layout.ParseScaling(o.Scaling); err != nil {
		return err
	}
	if o.Scale < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be at least 1, got %d", o.Scale)
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "jpeg_quality must be in [1, 100], got %d", o.JPEGQuality)
	}

	o.formats = nil
	for _, f := range o.Formats {
		format, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if !slices.Contains(o.formats, format) {
			o.formats = append(o.formats, format)
		}
	}
	o.Formats = formatNames(o.formats)

	// A mask may still change the canvas size; the engine re-validates.
	if err := o.layoutOptions(o.Width, o.Height).WithDefaults().Validate(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.Segmenter == "" {
		o.Segmenter = segment.NameJapanese
	}
	if o.PartsOfSpeech == nil {
		o.PartsOfSpeech = categoryNames(text.DefaultAllow)
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Colormap == "" {
		o.Colormap = render.DefaultPalette
	}
	if o.ColorMode == "" {
		o.ColorMode = render.ColorRandom
	}
	if o.Seed == 0 {
		o.Seed = layout.DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = sink.DefaultJPEGQuality
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// segmenterName canonicalizes a segmenter name.
func segmenterName(name string) (string, error) {
	switch strings.ToLower(name) {
	case segment.NameJapanese, "kagome", "":
		return segment.NameJapanese, nil
	case segment.NameWords, "whitespace", "uax29":
		return segment.NameWords, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid segmenter: %q (must be one of: %s, %s)",
		name, segment.NameJapanese, segment.NameWords)
}

func categoryNames(cs []segment.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func formatNames(fs []sink.Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

// NeedsRaster reports whether any requested format encodes the canvas.
func (o *Options) NeedsRaster() bool {
	for _, f := range o.formats {
		if f.Raster() {
			return true
		}
	}
	return false
}

// layoutOptions maps the run's options onto the layout engine for a canvas.
func (o *Options) layoutOptions(width, height int) layout.Options {
	return layout.Options{
		Width:         width,
		Height:        height,
		MinFontSize:   o.MinFontSize,
		MaxFontSize:   o.MaxFontSize,
		Scaling:       o.scaling,
		MaxGlyphs:     o.MaxWords,
		Margin:        o.Margin,
		MaxIterations: o.MaxIterations,
		TermTimeout:   o.TermTimeout,
		Vertical:      o.Vertical,
		Collision:     o.collision,
		Seed:          o.Seed,
	}
}

func (o *Options) maskOptions(width, height int) mask.Options {
	opts := mask.Options{
		Width:     width,
		Height:    height,
		Threshold: o.Threshold,
		Polarity:  o.polarity,
	}
	if o.background.A != 0 {
		opts.Background = o.background
	}
	return opts
}

// TokensKeyOpts returns cache key options for tokenization.
func (o *Options) TokensKeyOpts() cache.TokensKeyOpts {
	seg, _ := segmenterName(o.Segmenter)
	allow := categoryNames(o.allow)
	slices.Sort(allow)
	return cache.TokensKeyOpts{
		Segmenter:     seg,
		PartsOfSpeech: allow,
		Stopwords:     o.Stopwords,
		MaxWords:      o.MaxWords,
	}
}

// LayoutKeyOpts returns cache key options for a layout on a canvas.
func (o *Options) LayoutKeyOpts(width, height int, maskHash, fontHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       width,
		Height:      height,
		MaskHash:    maskHash,
		FontHash:    fontHash,
		MinFontSize: o.MinFontSize,
		MaxFontSize: o.MaxFontSize,
		Scaling:     o.scaling.String(),
		Margin:      o.Margin,
		Vertical:    o.Vertical,
		Collision:   o.collision.String(),
		Seed:        o.Seed,

		MaxIterations: o.MaxIterations,
		TermTimeout:   o.TermTimeout,
	}
}

// ArtifactKeyOpts returns cache key options for one encoded output.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Palette:    o.palette.Name,
		ColorMode:  o.ColorMode,
		Background: o.Background,
		Scale:      o.Scale,
		EmbedFont:  o.EmbedFont,
	}
	if format == string(sink.FormatJPEG) {
		opts.Quality = o.JPEGQuality
	}
	return opts
}
