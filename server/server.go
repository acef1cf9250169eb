// Package server exposes the answer engine over HTTP.
//
// Routes:
//
//	POST /v1/answer  run one query, returns an answer.Result
//	GET  /v1/models  list the model catalog
//	GET  /health     liveness
//	GET  /metrics    Prometheus exposition, when a registry is configured
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/petal-labs/perle/answer"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 90 * time.Second

	// MaxBodyBytes bounds a request body, image attachment included.
	MaxBodyBytes = 10 << 20
)

// Answerer produces answers. *answer.Engine implements it.
type Answerer interface {
	Generate(ctx context.Context, req answer.Request) (*answer.Result, error)
}

// Config holds the listener settings.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Server is the HTTP front end of the engine.
type Server struct {
	engine     Answerer
	logger     zerolog.Logger
	gatherer   prometheus.Gatherer
	version    string
	startTime  time.Time
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a server for engine.
func New(cfg Config, engine Answerer, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	s := &Server{
		engine:    engine,
		logger:    zerolog.Nop(),
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/answer", s.answerHandler)
	mux.HandleFunc("GET /v1/models", s.modelsHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return s.withRequestContext(mux)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens and serves until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Serve serves on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info().Str("addr", l.Addr().String()).Msg("HTTP server starting")
	err := s.httpServer.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
