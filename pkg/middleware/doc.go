// Package middleware provides observability for vitrine routers and HTTP
// handlers.
//
// # Prometheus Metrics
//
// Metrics collects:
//
//   - vitrine_navigations_total: navigations by route name and outcome
//   - vitrine_navigation_duration_seconds: time spent in guards and commit
//   - vitrine_http_requests_total: HTTP requests by route name and status code
//   - vitrine_live_connections: open live-navigation websockets
//
// Install it on each router and wrap the HTTP handler:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	m.Install(r)             // r is a *router.Router
//	handler = m.HTTP(handler)
//
// # OpenTelemetry
//
// Tracing returns a router guard that opens a span around the rest of each
// navigation:
//
//	r.BeforeEach(middleware.Tracing(middleware.WithTracerName("loja")))
//
// Without a configured tracer provider the global no-op provider is used.
package middleware
