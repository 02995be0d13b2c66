package pipeline

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/freq"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/mask"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/text/segment"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the watch mode and the HTTP server share this so caching and
// degradation behave the same everywhere.
//
// The Runner keeps no per-run state. Segmenters and resolved fonts are
// shared across runs because both are immutable and costly to build; each
// Execute gets its own faces, placement grid and canvas, so multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu         sync.Mutex
	segmenters map[string]segment.Segmenter
	fonts      map[string]*resolvedFont
}

type resolvedFont struct {
	font     *fonts.Font
	hash     string
	warnings []errors.Warning
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		segmenters: make(map[string]segment.Segmenter),
		fonts:      make(map[string]*resolvedFont),
	}
}

// Execute runs the complete tokenize → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{}
	text, warnings := ReadInput(opts, logger)
	result.Warnings = append(result.Warnings, warnings...)
	result.Stats.TextChars = utf8.RuneCountInString(text)

	// Stage 1: Tokenize
	tokenizeStart := time.Now()
	table, tokens, tokensHit, err := r.TokenizeWithCacheInfo(ctx, text, opts)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	result.Table = table
	result.Stats.TokenCount = tokens
	result.Stats.TermCount = len(table)
	result.Stats.TokenizeTime = time.Since(tokenizeStart)
	result.CacheInfo.TokensHit = tokensHit

	logger.Info("tokenization complete",
		"tokens", tokens,
		"terms", len(table),
		"duration", result.Stats.TokenizeTime)

	// Stage 2: Layout
	font, fontHash, warnings := r.ResolveFont(opts)
	result.Warnings = append(result.Warnings, warnings...)
	result.Stats.FontName = font.Name()

	width, height := opts.Width, opts.Height
	m, warnings := LoadMask(opts, width, height, logger)
	result.Warnings = append(result.Warnings, warnings...)
	var maskHash string
	if m != nil {
		width, height = m.Bitmap.Width(), m.Bitmap.Height()
		maskHash = m.Hash
		result.Stats.Mask = &m.Stats
	}
	result.Width, result.Height = width, height
	logger.Info("wordcloud size", "width", width, "height", height, "mask", m != nil)

	faces := fonts.NewFaces(font)
	defer faces.Close()

	layoutStart := time.Now()
	tableHash, _ := cache.HashJSON(table)
	layoutKey := r.Keyer.LayoutKey(tableHash, opts.LayoutKeyOpts(width, height, maskHash, fontHash))
	res, layoutHit, err := r.layoutWithCache(ctx, layoutKey, opts, func() (*layout.Result, error) {
		observability.Pipeline().OnLayoutStart(ctx, len(table), width, height)
		res, err := ComputeLayout(ctx, table, faces, maskBitmap(m), width, height, opts)
		placed, skipped := 0, 0
		if res != nil {
			placed, skipped = len(res.Placements), len(res.Skipped)
		}
		observability.Pipeline().OnLayoutComplete(ctx, placed, skipped, time.Since(layoutStart), err)
		return res, err
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.Placed = len(res.Placements)
	result.Stats.Skipped = len(res.Skipped)
	result.Stats.Candidates = res.Candidates
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"placed", len(res.Placements),
		"duration", result.Stats.LayoutTime)
	if len(res.Skipped) > 0 {
		logger.Warn("terms did not fit", "skipped", len(res.Skipped))
	}

	// Stage 3: Render
	renderStart := time.Now()
	img, artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, faces, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Image = img
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	for _, w := range result.Warnings {
		logger.Warn(w.Message, "code", w.Code)
	}
	return result, nil
}

func maskBitmap(m *Mask) *mask.Bitmap {
	if m == nil {
		return nil
	}
	return m.Bitmap
}

// TokenizeWithCacheInfo tokenizes text with caching and returns cache hit info.
func (r *Runner) TokenizeWithCacheInfo(ctx context.Context, text string, opts Options) (freq.Table, int, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, false, err
	}
	cacheKey := r.Keyer.TokensKey(cache.Hash([]byte(text)), opts.TokensKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if table, tokens, err := unmarshalTokens(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "tokens")
				return table, tokens, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tokens")
	}

	seg, err := r.Segmenter(opts.Segmenter)
	if err != nil {
		return nil, 0, false, err
	}
	start := time.Now()
	observability.Pipeline().OnTokenizeStart(ctx, opts.Segmenter, utf8.RuneCountInString(text))
	table, tokens, err := Tokenize(text, seg, opts)
	observability.Pipeline().OnTokenizeComplete(ctx, opts.Segmenter, tokens, len(table), time.Since(start), err)
	if err != nil {
		return nil, 0, false, err
	}

	if data, err := marshalTokens(table, tokens); err == nil {
		r.store(ctx, "tokens", cacheKey, data, cache.TokensTTL)
	}
	return table, tokens, false, nil
}

func (r *Runner) layoutWithCache(ctx context.Context, key string, opts Options, compute func() (*layout.Result, error)) (*layout.Result, bool, error) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if res, err := unmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	res, err := compute()
	if err != nil {
		return nil, false, err
	}
	if data, err := marshalLayout(res); err == nil {
		r.store(ctx, "layout", key, data, cache.LayoutTTL)
	}
	return res, false, nil
}

// RenderWithCacheInfo colours and encodes a layout with caching and returns
// cache hit info. The image is nil when every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *layout.Result, faces *fonts.Faces, opts Options) (*image.RGBA, map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}

	layoutHash, err := cache.HashJSON(res)
	if err != nil {
		return nil, nil, false, fmt.Errorf("hash layout for cache key: %w", err)
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			// Cached layouts carry no colours.
			if err := render.Colorize(res.Placements, opts.palette, opts.ColorMode, opts.Seed); err != nil {
				return nil, nil, false, err
			}
			return nil, artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	img, artifacts, err := RenderArtifacts(res, faces, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", key, data, cache.LayoutTTL)
	}
	return img, artifacts, false, nil
}

// store writes a cache entry. Cache failures never fail a run.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Segmenter returns the shared segmenter registered under name, creating it
// on first use. The Japanese segmenter loads its dictionary once.
func (r *Runner) Segmenter(name string) (segment.Segmenter, error) {
	canonical, err := segmenterName(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if seg, ok := r.segmenters[canonical]; ok {
		return seg, nil
	}
	seg, err := segment.New(canonical)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSegmenter, err, "init segmenter %s", canonical)
	}
	r.segmenters[canonical] = seg
	return seg, nil
}

// ResolveFont returns the run's font, its content hash and any fallback
// warnings. Resolutions are remembered per path, including their warnings,
// so every run reports the same degradation.
func (r *Runner) ResolveFont(opts Options) (*fonts.Font, string, []errors.Warning) {
	if opts.Font != nil {
		return opts.Font, cache.Hash(opts.Font.Data()), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rf, ok := r.fonts[opts.FontPath]; ok {
		return rf.font, rf.hash, rf.warnings
	}
	f, warnings := fonts.Resolve(opts.FontPath)
	rf := &resolvedFont{font: f, hash: cache.Hash(f.Data()), warnings: warnings}
	r.fonts[opts.FontPath] = rf
	if len(warnings) == 0 {
		r.Logger.Info("using font", "name", f.Name(), "path", f.Path())
	}
	return rf.font, rf.hash, rf.warnings
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
