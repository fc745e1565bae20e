package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the tower service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Ingestion Metrics
	FlightsLoadedTotal   prometheus.Counter
	RecordsRejectedTotal *prometheus.CounterVec
	SourceErrorsTotal    *prometheus.CounterVec

	// Detection Metrics
	CongestionEventsTotal *prometheus.CounterVec
	DetectionDuration     prometheus.Histogram
}

// NewMetricsRegistry registers every metric with the default Prometheus registerer
func NewMetricsRegistry() *MetricsRegistry {
	return NewMetricsRegistryWith(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryWith registers every metric with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetricsRegistryWith(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tower_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tower_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Ingestion Metrics
		FlightsLoadedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tower_flights_loaded_total",
				Help: "Total flight records accepted by the loader",
			},
		),
		RecordsRejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_records_rejected_total",
				Help: "Source records dropped during normalisation, by reason",
			},
			[]string{"reason"},
		),
		SourceErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_source_errors_total",
				Help: "Flight sources that could not be loaded, by reason",
			},
			[]string{"reason"},
		),

		// Detection Metrics
		CongestionEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_congestion_events_total",
				Help: "Airport departure congestion events reported, by airport",
			},
			[]string{"airport"},
		),
		DetectionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tower_congestion_detection_duration_seconds",
				Help:    "Time spent detecting congestion over one batch",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
	}
}
