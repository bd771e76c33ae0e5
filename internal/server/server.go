// Package server exposes crop plans and raw calendars over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rcliao/cropcal/internal/model"
	"github.com/rcliao/cropcal/internal/planner"
	"github.com/rcliao/cropcal/internal/store"
)

const (
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// gzipMinSize is the smallest response body that gets compressed.
	gzipMinSize = 1000
)

// PlanService assembles plans and raw calendars.
type PlanService interface {
	Plan(ctx context.Context, q model.PlanQuery) (*model.Plan, error)
	Calendar(ctx context.Context, q model.PlanQuery) (*model.Calendar, error)
}

// Catalog lists the plans held by the record store.
type Catalog interface {
	Plans(ctx context.Context, p store.SearchParams) ([]store.PlanSummary, error)
}

// Config configures a Server.
type Config struct {
	Addr   string
	Logger *slog.Logger

	// Catalog serves GET /plans. Nil disables the route.
	Catalog Catalog

	// Cache is reported through /metrics when set.
	Cache *planner.Cache

	// Registry receives the server's collectors. Nil creates a private registry.
	Registry *prometheus.Registry

	ShutdownTimeout time.Duration
}

// Server is the HTTP front end.
type Server struct {
	plans   PlanService
	cfg     Config
	logger  *slog.Logger
	metrics *metrics
	handler http.Handler
}

// New builds a Server around plans.
func New(plans PlanService, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	m, err := newMetrics(cfg.Registry, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	s := &Server{
		plans:   plans,
		cfg:     cfg,
		logger:  cfg.Logger,
		metrics: m,
	}

	mux := http.NewServeMux()
	s.RegisterHTTPHandlers(mux)

	gzip, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		return nil, fmt.Errorf("gzip wrapper: %w", err)
	}
	s.handler = requestID(s.accessLog(cors(gzip(mux))))
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. In-flight requests get
// cfg.ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
