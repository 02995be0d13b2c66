package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failed stages are
// logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log through l, prefixed with the event
// family.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "error", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

func (h *LogHooks) OnTokenizeStart(_ context.Context, segmenter string, chars int) {
	h.logger.Debug("tokenize", "segmenter", segmenter, "chars", chars)
}

func (h *LogHooks) OnTokenizeComplete(_ context.Context, segmenter string, tokens, terms int, d time.Duration, err error) {
	h.done("tokenize", d, err, "segmenter", segmenter, "tokens", tokens, "terms", terms)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, terms, width, height int) {
	h.logger.Debug("layout", "terms", terms, "canvas", [2]int{width, height})
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placed, skipped int, d time.Duration, err error) {
	h.done("layout", d, err, "placed", placed, "skipped", skipped)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status,
		"duration", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
