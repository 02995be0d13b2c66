package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/config"
)

// settingsFlags binds the [wordcloud] settings to command-line flags.
// Flag defaults mirror the built-in settings; only flags the user actually
// set are copied over the loaded configuration.
type settingsFlags struct {
	wc config.WordCloud
}

func addSettingsFlags(fs *pflag.FlagSet) *settingsFlags {
	s := &settingsFlags{wc: config.Default().WordCloud}
	wc := &s.wc

	// Input
	fs.StringVarP(&wc.Input, "input", "i", wc.Input, "text file to read")
	fs.StringVar(&wc.Segmenter, "segmenter", wc.Segmenter, "segmenter: ja (default), words")
	fs.StringSliceVar(&wc.PartsOfSpeech, "pos", wc.PartsOfSpeech, "parts of speech to keep: noun, verb, adjective, other")
	fs.StringSliceVar(&wc.Stopwords, "stopwords", wc.Stopwords, "terms to drop (comma-separated)")
	fs.IntVarP(&wc.MaxWords, "max-words", "n", wc.MaxWords, "maximum number of distinct terms")

	// Canvas and mask
	fs.IntVar(&wc.Width, "width", wc.Width, "canvas width in pixels")
	fs.IntVar(&wc.Height, "height", wc.Height, "canvas height in pixels")
	fs.StringVarP(&wc.MaskImage, "mask", "m", wc.MaskImage, "mask image; light pixels are forbidden by default")
	fs.StringVar(&wc.Polarity, "polarity", wc.Polarity, "mask polarity: light-forbidden (default), dark-forbidden")
	fs.IntVar(&wc.Threshold, "threshold", wc.Threshold, "mask luminance threshold (0-255)")
	fs.BoolVar(&wc.UseMaskSize, "use-mask-size", wc.UseMaskSize, "use the mask's own size as canvas size")

	// Layout
	fs.StringVar(&wc.FontPath, "font", wc.FontPath, "TrueType/OpenType font file")
	fs.IntVar(&wc.MinFontSize, "min-font-size", wc.MinFontSize, "smallest font size in pixels")
	fs.IntVar(&wc.MaxFontSize, "max-font-size", wc.MaxFontSize, "largest font size in pixels (0: a fifth of the shorter side)")
	fs.StringVar(&wc.Scaling, "scaling", wc.Scaling, "size scaling: linear (default), log")
	fs.IntVar(&wc.Margin, "margin", wc.Margin, "gap between terms in pixels")
	fs.Float64Var(&wc.Vertical, "vertical", wc.Vertical, "probability of trying vertical first (0-1)")
	fs.StringVar(&wc.Collision, "collision", wc.Collision, "collision test: box (default), pixel")
	fs.Uint64Var(&wc.Seed, "seed", wc.Seed, "random seed for placement and colours")
	fs.StringVar(&wc.TermTimeout, "term-timeout", wc.TermTimeout, "time limit per term, e.g. 2s (empty: none)")

	// Colour
	fs.StringVar(&wc.BackgroundColor, "background", wc.BackgroundColor, "background colour name or hex, or transparent")
	fs.StringVar(&wc.Colormap, "colormap", wc.Colormap, "palette name (append _r to reverse) or comma-separated hex colours")
	fs.StringVar(&wc.ColorMode, "color-mode", wc.ColorMode, "colour assignment: random (default), rank")

	return s
}

// apply copies every flag the user set onto dst.
func (s *settingsFlags) apply(fs *pflag.FlagSet, dst *config.WordCloud) {
	src := s.wc
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "input":
			dst.Input = src.Input
		case "segmenter":
			dst.Segmenter = src.Segmenter
		case "pos":
			dst.PartsOfSpeech = src.PartsOfSpeech
		case "stopwords":
			dst.Stopwords = src.Stopwords
		case "max-words":
			dst.MaxWords = src.MaxWords
		case "width":
			dst.Width = src.Width
		case "height":
			dst.Height = src.Height
		case "mask":
			dst.MaskImage = src.MaskImage
		case "polarity":
			dst.Polarity = src.Polarity
		case "threshold":
			dst.Threshold = src.Threshold
		case "use-mask-size":
			dst.UseMaskSize = src.UseMaskSize
		case "font":
			dst.FontPath = src.FontPath
		case "min-font-size":
			dst.MinFontSize = src.MinFontSize
		case "max-font-size":
			dst.MaxFontSize = src.MaxFontSize
		case "scaling":
			dst.Scaling = src.Scaling
		case "margin":
			dst.Margin = src.Margin
		case "vertical":
			dst.Vertical = src.Vertical
		case "collision":
			dst.Collision = src.Collision
		case "seed":
			dst.Seed = src.Seed
		case "term-timeout":
			dst.TermTimeout = src.TermTimeout
		case "background":
			dst.BackgroundColor = src.BackgroundColor
		case "colormap":
			dst.Colormap = src.Colormap
		case "color-mode":
			dst.ColorMode = src.ColorMode
		}
	})
}

// settings merges the flags into the loaded configuration and validates
// the result.
func (c *CLI) settings(fs *pflag.FlagSet, s *settingsFlags) (*config.Config, error) {
	cfg := *c.Config
	s.apply(fs, &cfg.WordCloud)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
