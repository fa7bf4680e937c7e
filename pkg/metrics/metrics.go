// Package metrics holds the names and bucket layouts shared by the service's
// prometheus and OpenTelemetry instruments.
package metrics

// Namespace prefixes every prometheus metric registered by the service.
const Namespace = "artisan"

// HTTPBuckets are latency buckets in seconds for request handling.
var HTTPBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// ProviderBuckets are latency buckets in seconds for calls to WhatsApp, SMS
// and mail providers. Those calls routinely take hundreds of milliseconds and
// time out after 15s.
var ProviderBuckets = []float64{.05, .1, .25, .5, 1, 2, 4, 8, 15} //nolint: gochecknoglobals
