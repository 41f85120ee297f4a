// Package observability groups the cross-cutting instrumentation used by
// both binaries:
//
//	logging  structured slog loggers with request ID propagation
//	metrics  the shared Prometheus registry and business recorders
//	tracing  OpenTelemetry server spans and trace ID echoing
package observability
