// Package cache stores intermediate and final word-cloud results.
//
// Word clouds are deterministic: the same text, settings and seed always
// produce the same layout and the same bytes. The pipeline exploits this by
// keying results on content hashes, so regenerating an unchanged cloud skips
// tokenization and layout entirely.
//
// Backends:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: process-local map, for tests and single-instance servers
//   - [RedisCache]: shared store for multi-instance servers
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer]; wrap one in [NewScopedKeyer] to give a tenant
// or server its own namespace.
package cache

import (
	"context"
	"time"
)

// Default lifetimes.
const (
	// TokensTTL bounds cached token frequency tables.
	TokensTTL = 7 * 24 * time.Hour

	// LayoutTTL bounds cached layouts.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL bounds rendered images held for download by the server.
	ArtifactTTL = time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// TokensKey addresses the frequency table of a text.
	TokensKey(textHash string, opts TokensKeyOpts) string

	// LayoutKey addresses the layout of a frequency table.
	LayoutKey(tableHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses one encoded output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// StoredKey addresses an artifact stored under an opaque ID.
	StoredKey(id string) string
}

// TokensKeyOpts are the settings that change a frequency table.
type TokensKeyOpts struct {
	Segmenter     string   `json:"segmenter"`
	PartsOfSpeech []string `json:"parts_of_speech"`
	Stopwords     []string `json:"stopwords,omitempty"`
	MaxWords      int      `json:"max_words"`
}

// LayoutKeyOpts are the settings that change a layout.
type LayoutKeyOpts struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MaskHash    string  `json:"mask_hash,omitempty"`
	FontHash    string  `json:"font_hash"`
	MinFontSize int     `json:"min_font_size"`
	MaxFontSize int     `json:"max_font_size"`
	Scaling     string  `json:"scaling"`
	Margin      int     `json:"margin"`
	Vertical    float64 `json:"vertical"`
	Collision   string  `json:"collision"`
	Seed        uint64  `json:"seed"`

	// Search bounds; a tighter bound can skip more terms.
	MaxIterations int           `json:"max_iterations,omitempty"`
	TermTimeout   time.Duration `json:"term_timeout,omitempty"`
}

// ArtifactKeyOpts are the settings that change an encoded output.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Palette    string `json:"palette"`
	ColorMode  string `json:"color_mode"`
	Background string `json:"background"`
	Scale      int    `json:"scale,omitempty"`
	Quality    int    `json:"quality,omitempty"`
	EmbedFont  bool   `json:"embed_font,omitempty"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) TokensKey(textHash string, opts TokensKeyOpts) string {
	return hashKey("tokens", textHash, opts)
}

func (DefaultKeyer) LayoutKey(tableHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tableHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

func (DefaultKeyer) StoredKey(id string) string {
	return "stored:" + id
}
