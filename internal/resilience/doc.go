// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breaker and retry implementations that shield the service from
// instability in the public bookstore directory.
//
// The package supports:
//   - A circuit breaker for the public directory API
//   - Retry logic with exponential backoff and jitter for the snapshot refresher
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DirectoryAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callDirectory()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DirectoryRefreshConfig(), func() error {
//	    return refreshSnapshot()
//	})
package resilience
