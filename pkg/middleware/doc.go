// Package middleware provides HTTP observability middleware for tessera
// servers.
//
// Metrics produces a Prometheus middleware counting requests and timing
// them per route. OpenTelemetry produces a tracing middleware creating a
// span per request. Both are plain func(http.Handler) http.Handler and
// compose with chi:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Metrics())
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("my-app")))
//
// Configure the global OpenTelemetry tracer provider in main() before
// starting the server; the middleware uses otel.Tracer.
package middleware
