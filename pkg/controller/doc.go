// Package controller holds the net/http middlewares wrapped around the API.
//
// WithLogger is outermost. It accepts a caller supplied X-Request-Id only when
// it is short printable ASCII and otherwise generates one, then writes one
// access log line per request at a level picked from the status code.
// WithCORS answers preflights against a configured origin allow-list and
// Metrics.Wrap records per route counts and latencies on an otel meter.
//
// PprofMux serves net/http/pprof under PprofPrefix.
package controller
