// Package server exposes the word-cloud pipeline over HTTP.
//
// Routes:
//
//	POST /api/wordcloud       generate a cloud, returns its id and location
//	GET  /api/wordcloud/{id}  download a stored artifact (?format=svg)
//	GET  /api/version         build information
//	GET  /health              liveness probe
//
// Generated artifacts are held in a [cache.Cache] under opaque ids for the
// configured TTL. Nothing is written to disk.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// MaxRequestBytes bounds a generate request, mask image included.
const MaxRequestBytes = 16 << 20

// Config configures a Server.
type Config struct {
	// Defaults seeds every request; the request body overrides it.
	Defaults pipeline.Options

	// ArtifactTTL is how long generated artifacts stay downloadable.
	ArtifactTTL time.Duration

	Logger *log.Logger
}

// Server serves generated word clouds.
type Server struct {
	runner   *pipeline.Runner
	store    cache.Cache
	keyer    cache.Keyer
	defaults pipeline.Options
	ttl      time.Duration
	logger   *log.Logger
}

// New creates a server that generates with runner and keeps artifacts in
// store. A nil store falls back to the runner's cache.
func New(runner *pipeline.Runner, store cache.Cache, cfg Config) *Server {
	if store == nil {
		store = runner.Cache
	}
	if cfg.ArtifactTTL <= 0 {
		cfg.ArtifactTTL = cache.ArtifactTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = runner.Logger
	}
	defaults := cfg.Defaults
	// Requests carry their own text and mask.
	defaults.Text, defaults.InputPath = "", ""
	defaults.MaskPath, defaults.MaskImage = "", nil
	return &Server{
		runner:   runner,
		store:    store,
		keyer:    runner.Keyer,
		defaults: defaults,
		ttl:      cfg.ArtifactTTL,
		logger:   cfg.Logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Post("/api/wordcloud", s.handleGenerate)
	r.Get("/api/wordcloud/{id}", s.handleGet)
	r.Get("/api/version", s.handleVersion)
	r.Get("/health", s.handleHealth)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("word cloud service listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

// generateResponse describes a stored cloud.
type generateResponse struct {
	ID       string   `json:"id"`
	Location string   `json:"location"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Formats  []string `json:"formats"`
	Placed   int      `json:"placed"`
	Skipped  []string `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// stored is the metadata kept next to the artifacts of one id.
type stored struct {
	Formats []string `json:"formats"`
}

// sizeFields are the request fields that must be positive when present.
// Options reads their zero value as unset.
type sizeFields struct {
	Width    *int `json:"width"`
	Height   *int `json:"height"`
	MaxWords *int `json:"max_words"`
}

func (f sizeFields) validate() error {
	for _, field := range []struct {
		name string
		v    *int
	}{{"width", f.Width}, {"height", f.Height}, {"max_words", f.MaxWords}} {
		if field.v == nil {
			continue
		}
		if err := errors.ValidatePositive(field.name, *field.v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts := s.defaults
	opts.Stopwords = slices.Clone(opts.Stopwords)
	opts.Formats = slices.Clone(opts.Formats)
	opts.PartsOfSpeech = slices.Clone(opts.PartsOfSpeech)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		var sizes sizeFields
		if err := json.Unmarshal(body, &opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		_ = json.Unmarshal(body, &sizes)
		if err := sizes.validate(); err != nil {
			writeError(w, errors.HTTPStatus(err), errors.UserMessage(err))
			return
		}
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Warn("generate failed", "error", err)
		writeError(w, errors.HTTPStatus(err), errors.UserMessage(err))
		return
	}

	id := uuid.New().String()
	formats := make([]string, 0, len(result.Artifacts))
	for _, f := range sink.Formats {
		data, ok := result.Artifacts[string(f)]
		if !ok {
			continue
		}
		if err := s.store.Set(r.Context(), s.artifactKey(id, string(f)), data, s.ttl); err != nil {
			writeError(w, http.StatusInternalServerError, "store artifact")
			return
		}
		formats = append(formats, string(f))
	}
	meta, _ := json.Marshal(stored{Formats: formats})
	if err := s.store.Set(r.Context(), s.keyer.StoredKey(id), meta, s.ttl); err != nil {
		writeError(w, http.StatusInternalServerError, "store artifact")
		return
	}

	resp := generateResponse{
		ID:       id,
		Location: "/api/wordcloud/" + id,
		Width:    result.Width,
		Height:   result.Height,
		Formats:  formats,
		Placed:   result.Stats.Placed,
		Skipped:  []string{},
		Warnings: []string{},
	}
	for _, sk := range result.Layout.Skipped {
		resp.Skipped = append(resp.Skipped, sk.Term)
	}
	for _, wn := range result.Warnings {
		resp.Warnings = append(resp.Warnings, wn.Message)
	}

	w.Header().Set("Location", resp.Location)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, errors.UserMessage(err))
		return
	}

	data, ok, err := s.store.Get(r.Context(), s.keyer.StoredKey(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read artifact")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "word cloud not found")
		return
	}
	var meta stored
	if err := json.Unmarshal(data, &meta); err != nil || len(meta.Formats) == 0 {
		writeError(w, http.StatusNotFound, "word cloud not found")
		return
	}

	format := sink.Format(meta.Formats[0])
	if q := r.URL.Query().Get("format"); q != "" {
		if format, err = sink.ParseFormat(q); err != nil {
			writeError(w, http.StatusBadRequest, errors.UserMessage(err))
			return
		}
	}

	artifact, ok, err := s.store.Get(r.Context(), s.artifactKey(id, string(format)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read artifact")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("format %s not available", format))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) artifactKey(id, format string) string {
	return s.keyer.StoredKey(id) + ":" + format
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// observe reports every request to the HTTP hooks, labelled by route
// pattern so ids do not explode cardinality.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route,
			"status", ww.Status(), "duration", time.Since(start))
	})
}
