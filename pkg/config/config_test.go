package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	wc := cfg.WordCloud
	if wc.Width != 800 || wc.Height != 800 {
		t.Errorf("size = %dx%d, want 800x800", wc.Width, wc.Height)
	}
	if wc.Colormap != "Paired" || wc.BackgroundColor != "white" || wc.MaxWords != 100 {
		t.Errorf("unexpected defaults: %+v", wc)
	}
	if !reflect.DeepEqual(wc.Stopwords, DefaultStopwords) {
		t.Errorf("Stopwords = %v", wc.Stopwords)
	}
	if wc.FontPath != DefaultFontPath || wc.Input != DefaultInputPath {
		t.Errorf("paths = %q, %q", wc.FontPath, wc.Input)
	}

	// Default must hand out independent slices.
	Default().WordCloud.Stopwords[0] = "x"
	if Default().WordCloud.Stopwords[0] != "する" {
		t.Error("Default shares its stopword slice")
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, warnings, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != errors.ErrCodeFileNotFound {
		t.Errorf("warnings = %v", warnings)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("missing config should yield the defaults")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "wordcloud.toml", `
log_level = "debug"

[wordcloud]
width = 640
colormap = "viridis"
stopwords = ["猫"]
vertical = 0.0
term_timeout = "250ms"
typo_key = 1

[server]
artifact_ttl = "30m"
`)
	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wc := cfg.WordCloud
	if cfg.LogLevel != "debug" || wc.Width != 640 || wc.Colormap != "viridis" {
		t.Errorf("values not applied: %+v", cfg)
	}
	if wc.Height != 800 || wc.MaxWords != 100 {
		t.Error("unset keys should keep their defaults")
	}
	if !reflect.DeepEqual(wc.Stopwords, []string{"猫"}) {
		t.Errorf("Stopwords = %v", wc.Stopwords)
	}
	if wc.Vertical != 0 {
		t.Errorf("explicit zero vertical = %v", wc.Vertical)
	}
	if wc.TermTimeoutDuration() != 250*time.Millisecond {
		t.Errorf("TermTimeout = %v", wc.TermTimeoutDuration())
	}
	if cfg.Server.ArtifactTTLDuration() != 30*time.Minute {
		t.Errorf("ArtifactTTL = %v", cfg.Server.ArtifactTTLDuration())
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "typo_key") {
		t.Errorf("warnings = %v, want one unknown-key warning", warnings)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "log_level": "INFO",
  "log_file": "logs/wordcloud.log",
  "wordcloud_settings": {
    "font_path": "fonts/ipaexg.ttf",
    "background_color": "black",
    "mask_image": "content/cat.png",
    "max_words": 50
  },
  "window_settings": {"width": 1024, "height": 768}
}`)
	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	wc := cfg.WordCloud
	if wc.FontPath != "fonts/ipaexg.ttf" || wc.BackgroundColor != "black" || wc.MaskImage != "content/cat.png" || wc.MaxWords != 50 {
		t.Errorf("wordcloud_settings not applied: %+v", wc)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 || cfg.Window.Title != "WordCloud Generator" {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.LogFile != "logs/wordcloud.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoadMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"bad.toml": "[wordcloud\nwidth = ",
		"bad.json": "{\"wordcloud_settings\": ",
	} {
		_, _, err := Load(writeFile(t, name, content))
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%s: err = %v, want INVALID_CONFIG", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"zero width", func(c *Config) { c.WordCloud.Width = 0 }, errors.ErrCodeInvalidDimensions},
		{"negative height", func(c *Config) { c.WordCloud.Height = -1 }, errors.ErrCodeInvalidDimensions},
		{"zero max words", func(c *Config) { c.WordCloud.MaxWords = 0 }, errors.ErrCodeInvalidConfig},
		{"bad colour", func(c *Config) { c.WordCloud.BackgroundColor = "blurple" }, errors.ErrCodeInvalidColor},
		{"bad palette", func(c *Config) { c.WordCloud.Colormap = "rainbow-ish" }, errors.ErrCodeInvalidPalette},
		{"bad colour mode", func(c *Config) { c.WordCloud.ColorMode = "hue" }, errors.ErrCodeInvalidConfig},
		{"bad polarity", func(c *Config) { c.WordCloud.Polarity = "grey" }, errors.ErrCodeInvalidConfig},
		{"bad threshold", func(c *Config) { c.WordCloud.Threshold = 300 }, errors.ErrCodeInvalidConfig},
		{"bad segmenter", func(c *Config) { c.WordCloud.Segmenter = "mecab" }, errors.ErrCodeInvalidConfig},
		{"unknown part of speech", func(c *Config) { c.WordCloud.PartsOfSpeech = []string{"noun", "adverb"} }, errors.ErrCodeInvalidConfig},
		{"no parts of speech", func(c *Config) { c.WordCloud.PartsOfSpeech = nil }, errors.ErrCodeInvalidConfig},
		{"control char in mask path", func(c *Config) { c.WordCloud.MaskImage = "cat\x00.png" }, errors.ErrCodeInvalidPath},
		{"control char in font path", func(c *Config) { c.WordCloud.FontPath = "font\n.ttf" }, errors.ErrCodeInvalidPath},
		{"bad scaling", func(c *Config) { c.WordCloud.Scaling = "sqrt" }, errors.ErrCodeInvalidConfig},
		{"bad collision", func(c *Config) { c.WordCloud.Collision = "ink" }, errors.ErrCodeInvalidConfig},
		{"font sizes inverted", func(c *Config) { c.WordCloud.MinFontSize = 40; c.WordCloud.MaxFontSize = 20 }, errors.ErrCodeInvalidConfig},
		{"negative margin", func(c *Config) { c.WordCloud.Margin = -1 }, errors.ErrCodeInvalidConfig},
		{"vertical above one", func(c *Config) { c.WordCloud.Vertical = 1.5 }, errors.ErrCodeInvalidConfig},
		{"bad timeout", func(c *Config) { c.WordCloud.TermTimeout = "soon" }, errors.ErrCodeInvalidConfig},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, errors.ErrCodeInvalidConfig},
		{"bad window", func(c *Config) { c.Window.Width = 0 }, errors.ErrCodeInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "out.toml", string(data))
	cfg, warnings, err := Load(path)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Load(encoded) = %v, %v", warnings, err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("encoded defaults did not round-trip:\n%s", data)
	}
}
