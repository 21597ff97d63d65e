package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics exposed on /metrics.
type Metrics struct {
	// Registry owns these metrics. A private registry avoids duplicate
	// collector panics when NewMetrics is called more than once in tests.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewMetrics creates a dedicated registry and registers all metrics in it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crm_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_requests_total",
				Help: "Total HTTP requests by method and status.",
			},
			[]string{"method", "status"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_rate_limited_total",
				Help: "Total requests rejected by the rate limiter.",
			},
		),
	}
}

// RecordRequest records one completed HTTP request.
func (m *Metrics) RecordRequest(route, method, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(method, status).Inc()
}

// IncrRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) IncrRateLimited() {
	m.rateLimited.Inc()
}
