// Package server implements the laneflow HTTP API.
//
// The API fronts the same pipeline the CLI uses: processes go in as
// markdown (POST /extract) or as structured documents (POST /processes),
// get validated and laid out by id, and positioned diagrams come back
// out as JSON or end up on a Miro board. Records persist through a
// store.Store, so ids stay valid across requests and restarts when the
// Mongo backend is configured.
//
// Errors are returned as a JSON envelope with a machine-readable code:
//
//	{"error": {"code": "PROCESS_NOT_FOUND", "message": "process \"x\" not found"}}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/laneflow/laneflow/pkg/pipeline"
	"github.com/laneflow/laneflow/pkg/publish"
	"github.com/laneflow/laneflow/pkg/store"
)

// Request bodies are JSON documents; nothing legitimate comes close to
// this limit.
const maxBodyBytes = 10 << 20

// Config carries the server's collaborators. Zero values get safe
// defaults except Publisher, which stays nil when Miro is not
// configured; the publish endpoint reports that as a service error.
type Config struct {
	Store     store.Store
	Runner    *pipeline.Runner
	Publisher *publish.Publisher

	// Options seeds every pipeline call with the instance defaults
	// (model, spacing, formats). Handlers overlay per-request fields.
	Options pipeline.Options

	Logger *log.Logger
}

// Server exposes the extraction, layout, and publishing pipeline over
// HTTP. Construct it with New; the zero value is not usable.
type Server struct {
	store     store.Store
	runner    *pipeline.Runner
	publisher *publish.Publisher
	opts      pipeline.Options
	logger    *log.Logger
}

// New creates a server. A nil store falls back to the in-memory
// implementation and a nil runner to an uncached one, so a bare
// Config{} yields a working development server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	return &Server{
		store:     cfg.Store,
		runner:    cfg.Runner,
		publisher: cfg.Publisher,
		opts:      cfg.Options,
		logger:    cfg.Logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/extract", s.handleExtract)

	r.Route("/processes", func(r chi.Router) {
		r.Get("/", s.handleListProcesses)
		r.Post("/", s.handleCreateProcess)
		r.Get("/{id}", s.handleGetProcess)
		r.Post("/{id}/validate", s.handleValidateProcess)
		r.Post("/{id}/layout", s.handleLayoutProcess)
	})

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/{id}", s.handleGetDiagram)
		r.Post("/{id}/publish", s.handlePublishDiagram)
	})

	return r
}

// ListenAndServe runs the API on addr until ctx is canceled, then
// shuts down gracefully, letting in-flight requests finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Extraction holds a request open across model rounds, so the
		// write window is generous.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// baseOptions copies the instance defaults for a single request.
func (s *Server) baseOptions() pipeline.Options {
	return s.opts
}

// logRequests records every request at debug level. Failures are
// additionally logged at error level by writeError.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
