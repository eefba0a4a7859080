package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vitrine-dev/vitrine/pkg/middleware"
	"github.com/vitrine-dev/vitrine/pkg/render"
	"github.com/vitrine-dev/vitrine/pkg/routepath"
	"github.com/vitrine-dev/vitrine/pkg/router"
	"go.uber.org/zap"
)

// Paths below the base served by the server itself.
const (
	ClientScriptPath = "/_vitrine/client.js"
	LivePath         = "/_vitrine/live"
)

// Server is the HTTP/WebSocket server for a Site.
type Server struct {
	config   Config
	site     Site
	base     string
	logger   *zap.Logger
	renderer *render.Renderer
	upgrader websocket.Upgrader

	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	guards   []router.Guard

	handler    http.Handler
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics installs m on every router and HTTP request and serves
// gatherer at /metrics.
func WithMetrics(m *middleware.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithGuards registers guards on every router the server builds, ahead of
// the metrics guard, so a tracing guard passed here spans it.
func WithGuards(guards ...router.Guard) Option {
	return func(s *Server) {
		s.guards = append(s.guards, guards...)
	}
}

// New creates a Server. The route table is validated once here.
func New(config Config, site Site, opts ...Option) (*Server, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	base, err := routepath.NormalizeBase(config.Base)
	if err != nil {
		return nil, fmt.Errorf("server: base path: %w", err)
	}

	s := &Server{
		config:   config,
		site:     site.withDefaults(),
		base:     base,
		logger:   zap.NewNop(),
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "server"))
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}

	if _, err := router.New(router.Options{Routes: s.site.Routes}); err != nil {
		return nil, err
	}

	s.handler = s.routes()
	return s, nil
}

// routes builds the chi mux.
func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(requestLogger(s.logger))
	mux.Use(chimw.Recoverer)
	if s.metrics != nil {
		mux.Use(s.metrics.HTTP)
	}

	mux.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	mux.Get(s.base+ClientScriptPath, s.serveClientScript)
	mux.Head(s.base+ClientScriptPath, s.serveClientScript)
	mux.Get(s.base+LivePath, s.handleLive)

	mux.Get("/*", s.handlePage)
	mux.Head("/*", s.handlePage)
	return mux
}

// newRouter builds a router for one navigation session.
func (s *Server) newRouter() (*router.Router, error) {
	history, err := router.NewWebHistory(s.base)
	if err != nil {
		return nil, err
	}
	r, err := router.New(router.Options{
		History: history,
		Routes:  s.site.Routes,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, err
	}
	for _, g := range s.guards {
		r.BeforeEach(g)
	}
	if s.metrics != nil {
		s.metrics.Install(r)
	}
	return r, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Base returns the normalized base path.
func (s *Server) Base() string {
	return s.base
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("address", ln.Addr().String()),
			zap.String("base", routepath.BaseHref(s.base)))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", zap.Error(err))
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}
