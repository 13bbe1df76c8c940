// Package server exposes the operational HTTP endpoints of a long-running
// bluegem process: liveness, readiness and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checker reports whether the process is ready to do its work.
type Checker interface {
	Ready(ctx context.Context) error
}

// Server wraps an Echo instance serving /healthz, /readyz and /metrics.
type Server struct {
	echo *echo.Echo
	addr string
	log  *slog.Logger
}

// New creates a Server listening on addr. Readiness is delegated to ready.
func New(addr string, ready Checker, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestLog(log))
	e.Use(Recovery(log))
	e.Use(Metrics())

	h := NewHealthHandler(ready)
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, addr: addr, log: log}
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", s.addr, err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
