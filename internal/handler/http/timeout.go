package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds each request, answering 504 when the handler overruns.
// The wrapped context is canceled so downstream work stops too.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			// The handler runs in its own goroutine; the guard below makes
			// sure exactly one side writes the response.
			var guard writeGuard
			guard.w = w

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(&guard, r)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guard.writeTimeout()
			}
		})
	}
}

// writeGuard serializes writes between the handler goroutine and the
// timeout path. After the deadline fires, handler writes are swallowed.
type writeGuard struct {
	w http.ResponseWriter

	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (g *writeGuard) Header() http.Header { return g.w.Header() }

func (g *writeGuard) WriteHeader(statusCode int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timedOut || g.written {
		return
	}
	g.written = true
	g.w.WriteHeader(statusCode)
}

func (g *writeGuard) Write(data []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !g.written {
		g.written = true
		g.w.WriteHeader(http.StatusOK)
	}
	return g.w.Write(data)
}

func (g *writeGuard) writeTimeout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timedOut = true
	if g.written {
		return
	}
	g.w.Header().Set("Content-Type", "application/json")
	g.w.WriteHeader(http.StatusGatewayTimeout)
	_, _ = g.w.Write([]byte(`{"error":"request timeout"}`))
}
