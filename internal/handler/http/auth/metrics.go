package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by result",
		},
		[]string{"result"},
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	unauthorizedAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unauthorized_attempts_total",
			Help: "Rejected requests to protected endpoints by method",
		},
		[]string{"method"},
	)
)

// RecordAuthRequest counts one token request; result is "success" or
// "failure".
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration observes how long a token request took.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}

// RecordUnauthorizedAttempt counts a request that Authz rejected.
func RecordUnauthorizedAttempt(method string) {
	unauthorizedAttempts.WithLabelValues(method).Inc()
}
