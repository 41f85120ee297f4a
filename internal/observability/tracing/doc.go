// Package tracing provides OpenTelemetry tracing integration.
//
// This package provides distributed tracing for HTTP requests using the
// W3C Trace Context propagation format.
//
// Key features:
//   - Automatic HTTP request tracing via Middleware
//   - Trace ID propagation in response headers (X-Trace-Id)
//   - Span attributes for method, path, and status code
//
// Example usage:
//
//	import "bookmap/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	mux.Handle("/", someHandler)
//	handler := tracing.Middleware(mux)
//	http.ListenAndServe(":8080", handler)
package tracing
