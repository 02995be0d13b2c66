// Package observability lets callers watch the word-cloud pipeline, its
// caches and the HTTP server without the libraries knowing who listens.
//
// Each event family has a hook interface with a no-op implementation. The
// process installs listeners once at startup; [Register] installs one value
// for every family it implements. [LogHooks] is the built-in listener that
// writes events to a charm logger, which is what `wordcloud -v` uses.
//
//	observability.Register(observability.NewLogHooks(logger))
//
// Libraries fetch the current hooks at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, len(table), width, height)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events from a pipeline run.
type PipelineHooks interface {
	OnTokenizeStart(ctx context.Context, segmenter string, chars int)
	OnTokenizeComplete(ctx context.Context, segmenter string, tokens, terms int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, terms, width, height int)
	OnLayoutComplete(ctx context.Context, placed, skipped int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is one of
// "tokens", "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives server traffic. route is the matched pattern, not the
// raw path, so ids do not explode cardinality.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnTokenizeStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnTokenizeComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// hookSet is an immutable snapshot of the installed hooks. Setters swap in
// a modified copy so readers never lock.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var noops = hookSet{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

var current atomic.Pointer[hookSet]

func init() {
	Reset()
}

func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks installs cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks installs HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Register installs h for every hook family it implements and reports how
// many it matched.
func Register(h any) int {
	n := 0
	update(func(s *hookSet) {
		if p, ok := h.(PipelineHooks); ok {
			s.pipeline = p
			n++
		}
		if c, ok := h.(CacheHooks); ok {
			s.cache = c
			n++
		}
		if x, ok := h.(HTTPHooks); ok {
			s.http = x
			n++
		}
	})
	return n
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset reinstalls the no-op hooks.
func Reset() {
	s := noops
	current.Store(&s)
}
