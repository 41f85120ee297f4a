package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bookmap/internal/pkg/config"
)

// WorkerMetrics instruments the refresh worker under the worker_refresh_*
// namespace. The embedded ConfigMetrics adds the worker_config_* family for
// the fail-open configuration loader.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// RefreshRunsTotal counts the total number of refresh job runs.
	// Labels: status (success, failure)
	RefreshRunsTotal *prometheus.CounterVec

	// RefreshDurationSeconds measures the duration of refresh job execution.
	// Buckets cover 100ms up to 2 minutes, matching typical upstream latency.
	RefreshDurationSeconds prometheus.Histogram

	// RefreshRecordsTotal counts the directory records fetched across all runs.
	RefreshRecordsTotal prometheus.Counter

	// RefreshLastSuccessTimestamp records the Unix timestamp of the last
	// successful refresh.
	RefreshLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics builds the metric set. promauto registers everything on
// the default registry, so call this once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		RefreshRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_refresh_runs_total",
			Help: "Total number of refresh job runs by status (success/failure)",
		}, []string{"status"}),

		RefreshDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_refresh_duration_seconds",
			Help:    "Duration of refresh job execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}),

		RefreshRecordsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_refresh_records_total",
			Help: "Total number of directory records fetched across all refresh runs",
		}),

		RefreshLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful refresh run",
		}),
	}
}

// MustRegister exists for symmetry with hand-registered metric sets.
// promauto already registered everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordRefreshRun increments the run counter; status is "success" or
// "failure".
func (m *WorkerMetrics) RecordRefreshRun(status string) {
	m.RefreshRunsTotal.WithLabelValues(status).Inc()
}

// RecordRefreshDuration observes the duration of a refresh job in seconds.
func (m *WorkerMetrics) RecordRefreshDuration(seconds float64) {
	m.RefreshDurationSeconds.Observe(seconds)
}

// RecordRecordsFetched adds the number of records fetched to the total counter.
func (m *WorkerMetrics) RecordRecordsFetched(count int) {
	m.RefreshRecordsTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful refresh.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.RefreshLastSuccessTimestamp.SetToCurrentTime()
}
