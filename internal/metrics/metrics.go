// Package metrics exposes Prometheus metrics for the HTTP API.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the request metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthFailures    prometheus.Counter
	Panics          prometheus.Counter
}

// NewMetrics creates and registers the metrics on the default registry.
// Registration happens once per process; later calls return the same instance.
//
// Metrics:
//   - sylo_http_requests_total{method,route,status}
//   - sylo_http_request_duration_seconds{method,route}
//   - sylo_auth_failures_total
//   - sylo_http_panics_total
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sylo_http_requests_total",
					Help: "Total number of HTTP requests by route and status code",
				},
				[]string{"method", "route", "status"},
			),
			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "sylo_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
				},
				[]string{"method", "route"},
			),
			AuthFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "sylo_auth_failures_total",
					Help: "Total number of requests rejected by authentication",
				},
			),
			Panics: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "sylo_http_panics_total",
					Help: "Total number of handler panics turned into 500 responses",
				},
			),
		}
	})
	return globalMetrics
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
