// Package server exposes the graph builders and the layout engine over a
// JSON HTTP API.
//
// Routes:
//
//	GET  /healthz
//	POST /api/v1/graphs/code
//	POST /api/v1/graphs/contributors
//	POST /api/v1/layout
//	POST /api/v1/render
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/repograph/pkg/build"
	"github.com/matzehuels/repograph/pkg/config"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Pinger is implemented by cache backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Addr string
	// MaxBodyBytes caps request bodies. Zero uses the config default.
	MaxBodyBytes int64
	// Layout and Code are the defaults a request body overrides.
	Layout layout.Config
	Code   build.CodeOptions
	Logger *log.Logger
}

// OptionsFromConfig derives server options from a loaded configuration.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) Options {
	return Options{
		Addr:         cfg.Server.Addr,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Layout:       cfg.Layout,
		Code:         cfg.Code,
		Logger:       logger,
	}
}

// Server is the repograph HTTP API.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.Default().Server.MaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Addr == "" {
		opts.Addr = config.Default().Server.Addr
	}

	s := &Server{runner: runner, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/graphs/code", s.handleCode)
		r.Post("/graphs/contributors", s.handleContributors)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("starting API server", "addr", s.opts.Addr, "cache", s.runner.Cache.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
