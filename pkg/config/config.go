// Package config loads word-cloud settings from TOML or JSON files.
//
// A file only needs the keys it wants to change; everything else keeps the
// value from [Default]. TOML is the native format:
//
//	log_level = "info"
//
//	[wordcloud]
//	font_path = "content/Noto_Sans_JP/NotoSansJP-VariableFont_wght.ttf"
//	colormap  = "Paired"
//	stopwords = ["する", "ある", "こと", "ない", "いう", "もの"]
//	max_words = 100
//
// JSON files use the same keys, with the sections named wordcloud_settings,
// window_settings and server_settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/mask"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/text/segment"
)

// Well-known paths.
const (
	DefaultPath      = "wordcloud.toml"
	DefaultInputPath = "content/sample_text.txt"
	DefaultFontPath  = "content/Noto_Sans_JP/NotoSansJP-VariableFont_wght.ttf"
)

// DefaultStopwords are common Japanese function words that carry no topic.
var DefaultStopwords = []string{"する", "ある", "こと", "ない", "いう", "もの"}

// Config is the complete settings file.
type Config struct {
	LogLevel       string `toml:"log_level" json:"log_level"`
	LogFile        string `toml:"log_file" json:"log_file"`
	MaxLogSizeMB   int    `toml:"max_log_size_mb" json:"max_log_size_mb"`
	BackupLogCount int    `toml:"backup_log_count" json:"backup_log_count"`

	WordCloud WordCloud `toml:"wordcloud" json:"wordcloud_settings"`
	Window    Window    `toml:"window" json:"window_settings"`
	Server    Server    `toml:"server" json:"server_settings"`
}

// WordCloud holds the generation settings.
type WordCloud struct {
	Input           string   `toml:"input" json:"input"`
	FontPath        string   `toml:"font_path" json:"font_path"`
	Width           int      `toml:"width" json:"width"`
	Height          int      `toml:"height" json:"height"`
	BackgroundColor string   `toml:"background_color" json:"background_color"`
	Colormap        string   `toml:"colormap" json:"colormap"`
	ColorMode       string   `toml:"color_mode" json:"color_mode"`
	MaskImage       string   `toml:"mask_image" json:"mask_image"`
	Stopwords       []string `toml:"stopwords" json:"stopwords"`
	MaxWords        int      `toml:"max_words" json:"max_words"`
	Segmenter       string   `toml:"segmenter" json:"segmenter"`
	PartsOfSpeech   []string `toml:"parts_of_speech" json:"parts_of_speech"`

	// Mask handling.
	Polarity    string `toml:"polarity" json:"polarity"`
	Threshold   int    `toml:"threshold" json:"threshold"`
	UseMaskSize bool   `toml:"use_mask_size" json:"use_mask_size"`

	// Layout.
	MinFontSize int     `toml:"min_font_size" json:"min_font_size"`
	MaxFontSize int     `toml:"max_font_size" json:"max_font_size"`
	Scaling     string  `toml:"scaling" json:"scaling"`
	Margin      int     `toml:"margin" json:"margin"`
	Vertical    float64 `toml:"vertical" json:"vertical"`
	Collision   string  `toml:"collision" json:"collision"`
	Seed        uint64  `toml:"seed" json:"seed"`
	TermTimeout string  `toml:"term_timeout" json:"term_timeout"`
}

// Window sizes the interactive view; the cloud is regenerated at this size.
type Window struct {
	Width  int    `toml:"width" json:"width"`
	Height int    `toml:"height" json:"height"`
	Title  string `toml:"title" json:"title"`
}

// Server configures `wordcloud serve`.
type Server struct {
	Addr          string `toml:"addr" json:"addr"`
	RedisAddr     string `toml:"redis_addr" json:"redis_addr"`
	RedisPassword string `toml:"redis_password" json:"redis_password"`
	RedisDB       int    `toml:"redis_db" json:"redis_db"`
	ArtifactTTL   string `toml:"artifact_ttl" json:"artifact_ttl"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		MaxLogSizeMB:   10,
		BackupLogCount: 5,
		WordCloud: WordCloud{
			Input:           DefaultInputPath,
			FontPath:        DefaultFontPath,
			Width:           800,
			Height:          800,
			BackgroundColor: "white",
			Colormap:        render.DefaultPalette,
			ColorMode:       render.ColorRandom,
			Stopwords:       slices.Clone(DefaultStopwords),
			MaxWords:        100,
			Segmenter:       segment.NameJapanese,
			PartsOfSpeech:   []string{"noun", "verb", "adjective"},
			Polarity:        mask.LightForbidden.String(),
			Threshold:       mask.DefaultThreshold,
			MinFontSize:     layout.DefaultMinFontSize,
			Scaling:         layout.ScaleLinear.String(),
			Margin:          layout.DefaultMargin,
			Vertical:        0.1,
			Collision:       layout.CollisionBox.String(),
			Seed:            layout.DefaultSeed,
		},
		Window: Window{
			Width:  1200,
			Height: 900,
			Title:  "WordCloud Generator",
		},
		Server: Server{
			Addr:        ":8080",
			ArtifactTTL: "1h",
		},
	}
}

// Load reads a settings file over the defaults. The format follows the
// extension: .json is JSON, anything else TOML.
//
// A missing file is not an error: the defaults are returned with a warning.
// Unknown TOML keys are reported as warnings too. The result is validated.
func Load(path string) (*Config, []errors.Warning, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		w := errors.Warn(errors.ErrCodeFileNotFound, err, "config file not found: %s, using defaults", path)
		return cfg, []errors.Warning{w}, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var warnings []errors.Warning
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	} else {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
		for _, key := range md.Undecoded() {
			warnings = append(warnings, errors.Warn(errors.ErrCodeInvalidConfig, nil, "unknown config key %q in %s", key.String(), path))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// Validate rejects settings that cannot produce a word cloud.
func (c *Config) Validate() error {
	if err := errors.ValidateOneOf("log_level", strings.ToLower(c.LogLevel), "debug", "info", "warn", "warning", "error"); err != nil {
		return err
	}
	if c.MaxLogSizeMB < 0 || c.BackupLogCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "log rotation limits cannot be negative")
	}

	wc := c.WordCloud
	if err := errors.ValidateDimensions(wc.Width, wc.Height); err != nil {
		return err
	}
	if err := errors.ValidatePositive("max_words", wc.MaxWords); err != nil {
		return err
	}
	if _, err := render.ParseColor(wc.BackgroundColor); err != nil {
		return err
	}
	if _, err := render.LookupPalette(wc.Colormap); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("color_mode", wc.ColorMode, render.ColorRandom, render.ColorRank); err != nil {
		return err
	}
	if _, err := mask.ParsePolarity(wc.Polarity); err != nil {
		return err
	}
	if wc.Threshold < 0 || wc.Threshold > 255 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must be in [0, 255], got %d", wc.Threshold)
	}
	if err := errors.ValidateOneOf("segmenter", strings.ToLower(wc.Segmenter),
		segment.NameJapanese, "kagome", segment.NameWords, "whitespace", "uax29"); err != nil {
		return err
	}
	if len(wc.PartsOfSpeech) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "parts_of_speech cannot be empty")
	}
	if _, err := segment.ParseCategories(wc.PartsOfSpeech); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parts_of_speech")
	}
	for _, p := range []string{wc.Input, wc.MaskImage, wc.FontPath, c.LogFile} {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	if _, err := layout.ParseScaling(wc.Scaling); err != nil {
		return err
	}
	if _, err := layout.ParseCollision(wc.Collision); err != nil {
		return err
	}
	if wc.MinFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_font_size must be positive, got %d", wc.MinFontSize)
	}
	if wc.MaxFontSize != 0 && wc.MaxFontSize < wc.MinFontSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max_font_size %d is below min_font_size %d", wc.MaxFontSize, wc.MinFontSize)
	}
	if wc.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin cannot be negative, got %d", wc.Margin)
	}
	if wc.Vertical < 0 || wc.Vertical > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "vertical must be in [0, 1], got %g", wc.Vertical)
	}
	if _, err := parseDuration("term_timeout", wc.TermTimeout); err != nil {
		return err
	}

	if c.Window.Width != 0 || c.Window.Height != 0 {
		if err := errors.ValidateDimensions(c.Window.Width, c.Window.Height); err != nil {
			return err
		}
	}
	if _, err := parseDuration("artifact_ttl", c.Server.ArtifactTTL); err != nil {
		return err
	}
	return nil
}

// TermTimeoutDuration returns the parsed per-term layout timeout; zero when unset.
func (wc WordCloud) TermTimeoutDuration() time.Duration {
	d, _ := parseDuration("term_timeout", wc.TermTimeout)
	return d
}

// ArtifactTTLDuration returns the parsed artifact lifetime; zero when unset.
func (s Server) ArtifactTTLDuration() time.Duration {
	d, _ := parseDuration("artifact_ttl", s.ArtifactTTL)
	return d
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid %s: %q", name, s)
	}
	return d, nil
}

// Encode writes the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
