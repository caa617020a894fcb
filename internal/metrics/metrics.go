package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the server.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	GeoQueriesTotal    *prometheus.CounterVec
	GeoQueryCandidates prometheus.Histogram

	UpstreamRequestsTotal *prometheus.CounterVec
	NewsCacheHitsTotal    *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize builds the metric instruments on a dedicated registry.
func Initialize() *Metrics {
	once.Do(func() {
		registry := prometheus.NewRegistry()
		factory := promauto.With(registry)

		instance = &Metrics{
			Registry: registry,

			HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method, path, and status.",
			}, []string{"method", "path", "status"}),

			HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and path.",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path"}),

			HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Requests currently being served.",
			}),

			GeoQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "geo_queries_total",
				Help: "Proximity listing queries by content kind and mode (nearby or recency fallback).",
			}, []string{"kind", "mode"}),

			GeoQueryCandidates: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "geo_query_candidates",
				Help:    "Rows returned by the bounding-box prefilter per proximity query.",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			}),

			UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "upstream_requests_total",
				Help: "Outbound requests to external services by service and outcome.",
			}, []string{"service", "outcome"}),

			NewsCacheHitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "news_cache_total",
				Help: "News endpoint cache lookups by result.",
			}, []string{"result"}),
		}
	})
	return instance
}

// Get returns the shared instruments, initializing on first use.
func Get() *Metrics {
	return Initialize()
}
