package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts listing requests, bucketed by how deep into the
	// result set clients paginate.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookstore_pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds measures listing latency per layer
	// (handler, service, repository).
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookstore_pagination_duration_seconds",
			Help:    "Request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// TotalCount is the number of bookstores in the current snapshot,
	// refreshed on every listing query.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookstore_total_count",
			Help: "Current total number of listed bookstores",
		},
	)

	// ErrorsTotal counts listing failures by cause.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookstore_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest increments the request counter for a completed listing.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageBucket(page)).Inc()
}

// RecordDuration observes how long one layer of a listing took, in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount sets the bookstore count gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError increments the error counter. errorType is one of
// "validation", "snapshot", "database", or "timeout".
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
