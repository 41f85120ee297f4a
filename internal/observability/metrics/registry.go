package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Directory and snapshot metrics.
var (
	// UserBookstoresTotal is the count of user entries in the database,
	// refreshed periodically.
	UserBookstoresTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_bookstores_total",
			Help: "Total number of user-registered bookstores in the database",
		},
	)

	// DirectoryFetchTotal counts upstream page fetches; result is
	// "success" or "failure".
	DirectoryFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_fetch_total",
			Help: "Total number of directory API fetch attempts",
		},
		[]string{"result"},
	)

	DirectoryRecordsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_records_fetched_total",
			Help: "Total number of records received from the directory API",
		},
	)

	DirectoryFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "directory_fetch_duration_seconds",
			Help:    "Time taken to fetch a page from the directory API",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	SnapshotRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_refresh_duration_seconds",
			Help:    "Time taken to rebuild the aggregated bookstore snapshot",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	SnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_bookstores_total",
			Help: "Number of bookstores in the current aggregated snapshot",
		},
	)

	// SnapshotAge rises between refreshes; a refresh resets it to zero.
	SnapshotAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_age_seconds",
			Help: "Seconds since the aggregated snapshot was last rebuilt",
		},
	)

	SearchRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_search_requests_total",
			Help: "Total number of directory search requests",
		},
	)
)

// Database metrics.
var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest publishes the full set of per-request HTTP metrics.
// Sizes of zero are skipped, a bodyless GET has no request size sample.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration observes duration under the named operation.
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
