package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitrine-dev/vitrine/pkg/router"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vitrine").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vitrine",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Navigation outcomes used as the status label.
const (
	StatusOK         = "ok"
	StatusNotFound   = "not_found"
	StatusDuplicated = "duplicated"
	StatusAborted    = "aborted"
	StatusCancelled  = "cancelled"
	StatusError      = "error"
)

// unmatchedRoute labels locations no route matched.
const unmatchedRoute = "unmatched"

// Metrics holds the collectors. Create it once per registry; install it on
// as many routers as needed.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	httpRequestsTotal  *prometheus.CounterVec
	liveConnections    prometheus.Gauge
}

// NewMetrics registers the collectors on the configured registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of router navigations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Time spent in guards and commit per navigation",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by route and status code",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Number of open live-navigation websockets",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Install registers the metrics guard and after hook on r.
func (m *Metrics) Install(r *router.Router) {
	r.BeforeEach(m.Guard())
	r.AfterEach(m.AfterHook)
}

// Guard times the rest of the navigation.
func (m *Metrics) Guard() router.Guard {
	return router.GuardFunc(func(ctx context.Context, to, from router.Location, next func() error) error {
		start := time.Now()
		err := next()
		m.navigationDuration.WithLabelValues(routeLabel(to)).Observe(time.Since(start).Seconds())
		return err
	})
}

// AfterHook counts every navigation attempt by outcome.
func (m *Metrics) AfterHook(_ context.Context, to, _ router.Location, failure error) {
	m.navigationsTotal.WithLabelValues(routeLabel(to), NavigationStatus(to, failure)).Inc()
}

// NavigationStatus classifies a finished navigation.
func NavigationStatus(to router.Location, failure error) string {
	switch {
	case failure == nil && !to.Matched():
		return StatusNotFound
	case failure == nil:
		return StatusOK
	case errors.Is(failure, router.ErrNavigationDuplicated):
		return StatusDuplicated
	case errors.Is(failure, router.ErrNavigationCancelled):
		return StatusCancelled
	case errors.Is(failure, router.ErrNavigationAborted):
		return StatusAborted
	default:
		return StatusError
	}
}

func routeLabel(loc router.Location) string {
	if loc.Name == "" {
		return unmatchedRoute
	}
	return loc.Name
}

// LiveConnectionOpened increments the open websocket gauge.
func (m *Metrics) LiveConnectionOpened() {
	m.liveConnections.Inc()
}

// LiveConnectionClosed decrements the open websocket gauge.
func (m *Metrics) LiveConnectionClosed() {
	m.liveConnections.Dec()
}

// routeLabelKey is the context key of the per-request route label.
type routeLabelKey struct{}

type routeLabelHolder struct {
	mu    sync.Mutex
	label string
}

// SetRouteLabel names the route an HTTP request was served by. Handlers
// wrapped by HTTP call it once they know the matched route; requests that
// never set it are labelled with their chi route pattern.
func SetRouteLabel(ctx context.Context, label string) {
	if h, ok := ctx.Value(routeLabelKey{}).(*routeLabelHolder); ok {
		h.mu.Lock()
		h.label = label
		h.mu.Unlock()
	}
}

// HTTP counts requests by route label and status code.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		holder := &routeLabelHolder{}
		r = r.WithContext(context.WithValue(r.Context(), routeLabelKey{}, holder))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		holder.mu.Lock()
		label := holder.label
		holder.mu.Unlock()
		if label == "" {
			label = routePattern(r)
		}
		m.httpRequestsTotal.WithLabelValues(label, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the chi pattern that served r, or "other".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "other"
}
