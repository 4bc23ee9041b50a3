// Package httpserver wires the preview server's routes and manages its lifecycle.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/designpreview/internal/design"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
	"git.home.luguber.info/inful/designpreview/internal/logfields"
	"git.home.luguber.info/inful/designpreview/internal/metrics"
	"git.home.luguber.info/inful/designpreview/internal/server/handlers"
	smw "git.home.luguber.info/inful/designpreview/internal/server/middleware"
)

const defaultShutdownTimeout = 5 * time.Second

// Options configures the preview server.
type Options struct {
	Root        string
	Title       string
	Description string

	Builder  *design.Builder // nil uses design defaults
	Registry *prom.Registry  // nil disables /metrics
	Logger   *slog.Logger

	ShutdownTimeout time.Duration
}

// Server serves the manifest, health and metrics endpoints plus the files below Root.
type Server struct {
	opts    Options
	logger  *slog.Logger
	handler http.Handler

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
	done     chan error
}

// New constructs a preview server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	adapter := ferrors.NewHTTPErrorAdapter(opts.Logger)

	manifest := handlers.NewManifestHandlers(opts.Builder, handlers.ManifestSource{
		Root:        opts.Root,
		Title:       opts.Title,
		Description: opts.Description,
	}, adapter)
	monitoring := handlers.NewMonitoringHandlers()

	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", manifest.HandleManifest)
	mux.HandleFunc("/healthz", monitoring.HandleHealthCheck)
	if opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(opts.Registry))
	}
	mux.Handle("/", handlers.NewStaticHandler(opts.Root))

	return &Server{
		opts:    opts,
		logger:  opts.Logger,
		handler: smw.Chain(opts.Logger, adapter)(mux),
	}
}

// Handler returns the fully wrapped route handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds addr and serves in the background. Binding happens before
// Start returns so port conflicts surface immediately.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.http != nil {
		return errors.New("server already started")
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to bind preview server").
			WithContext("addr", addr).
			Build()
	}

	s.listener = ln
	s.done = make(chan error, 1)
	s.http = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	srv, done := s.http, s.done
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			s.logger.Error("Preview server failed", logfields.Error(err))
		}
		done <- err
	}()

	s.logger.Info("Preview server started", logfields.Addr(ln.Addr().String()), logfields.Root(s.opts.Root))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.http, s.done
	s.http = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}
	if err := <-done; err != nil {
		return err
	}
	s.logger.Info("Preview server stopped")
	return nil
}

// Run starts the server and blocks until ctx is done, then shuts down
// within the configured timeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	if err := s.Start(ctx, addr); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
