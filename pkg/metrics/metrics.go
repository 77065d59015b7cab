package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Insight computation metrics
	InsightQueriesTotal    *prometheus.CounterVec
	InsightComputeDuration *prometheus.HistogramVec

	// Ads platform API metrics
	PlatformAPICalls    *prometheus.CounterVec
	PlatformAPIDuration *prometheus.HistogramVec
	PlatformAPIFailures *prometheus.CounterVec

	// Snapshot cache metrics
	SnapshotCacheHits   prometheus.Counter
	SnapshotCacheMisses prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		InsightQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insight_queries_total",
				Help: "Total number of insight computations by kind",
			},
			[]string{"kind"},
		),

		InsightComputeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insight_compute_duration_seconds",
				Help:    "Insight computation duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"kind"},
		),

		PlatformAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_api_calls_total",
				Help: "Total number of ads platform API calls",
			},
			[]string{"status"},
		),

		PlatformAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "platform_api_duration_seconds",
				Help:    "Ads platform API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),

		PlatformAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_api_failures_total",
				Help: "Total number of ads platform API failures by type",
			},
			[]string{"error_type"},
		),

		SnapshotCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_cache_hits_total",
				Help: "Total number of snapshot cache hits",
			},
		),

		SnapshotCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_cache_misses_total",
				Help: "Total number of snapshot cache misses",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request with its duration
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncHTTPRequestsInFlight increments the in-flight requests gauge
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight requests gauge
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordInsightQuery records one insight computation with its duration
func (m *Metrics) RecordInsightQuery(kind string, duration time.Duration) {
	m.InsightQueriesTotal.WithLabelValues(kind).Inc()
	m.InsightComputeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordPlatformAPICall records an ads platform API call
func (m *Metrics) RecordPlatformAPICall(status string, duration time.Duration) {
	m.PlatformAPICalls.WithLabelValues(status).Inc()
	m.PlatformAPIDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordPlatformAPIFailure records an ads platform API failure
func (m *Metrics) RecordPlatformAPIFailure(errorType string) {
	m.PlatformAPIFailures.WithLabelValues(errorType).Inc()
}

// RecordCacheHit records a snapshot cache hit
func (m *Metrics) RecordCacheHit() {
	m.SnapshotCacheHits.Inc()
}

// RecordCacheMiss records a snapshot cache miss
func (m *Metrics) RecordCacheMiss() {
	m.SnapshotCacheMisses.Inc()
}
