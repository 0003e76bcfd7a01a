// Package server exposes layout passes over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build version
//	POST /v1/layout         one pass: {"scene": {...}, "width": "...", "height": "..."}
//	POST /v1/layout/batch   several sizes: {"scene": {...}, "sizes": [{"width": "...", "height": "..."}]}
//
// Errors are JSON objects {"code": "...", "message": "..."} with the code
// from pkg/errors.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/canvaslayout/pkg/pipeline"
)

const (
	// maxBodyBytes caps request bodies.
	maxBodyBytes = 1 << 20

	// maxBatchSizes caps the number of passes in one batch request.
	maxBatchSizes = 64

	shutdownTimeout = 10 * time.Second
)

// Server serves layout requests through a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layout", func(r chi.Router) {
		r.Use(limitBody(maxBodyBytes))
		r.Post("/", s.handleLayout)
		r.Post("/batch", s.handleBatch)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
