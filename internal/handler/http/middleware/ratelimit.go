package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a sliding window. It guards
// the token endpoint against credential stuffing; the rest of the API is
// unlimited.
type RateLimiter struct {
	limit       int
	window      time.Duration
	ipExtractor IPExtractor

	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimiter builds a limiter allowing limit requests per window,
// keyed by the IP the extractor resolves.
func NewRateLimiter(limit int, window time.Duration, ipExtractor IPExtractor) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		window:      window,
		ipExtractor: ipExtractor,
		requests:    make(map[string][]time.Time),
	}
}

// Middleware enforces the limit, answering 429 when a client exceeds it.
// A failed extraction falls back to RemoteAddr before giving up.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.ipExtractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter: IP extraction failed, using RemoteAddr fallback",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr))
			if ip, err = hostOnly(r.RemoteAddr); err != nil {
				slog.Error("rate limiter: RemoteAddr extraction failed",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		if !rl.allow(ip) {
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
				slog.Int("limit", rl.limit),
				slog.Duration("window", rl.window))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow prunes timestamps outside the window, then admits the request if
// the remainder is under the limit.
func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := pruneBefore(rl.requests[ip], cutoff)
	if len(recent) >= rl.limit {
		rl.requests[ip] = recent
		return false
	}
	rl.requests[ip] = append(recent, now)
	return true
}

// CleanupExpired drops idle IPs so the map does not grow without bound.
// The server runs this on a ticker.
func (rl *RateLimiter) CleanupExpired() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, timestamps := range rl.requests {
		recent := pruneBefore(timestamps, cutoff)
		if len(recent) == 0 {
			delete(rl.requests, ip)
			continue
		}
		rl.requests[ip] = recent
	}

	slog.Debug("rate limiter: cleanup completed",
		slog.Int("active_ips", len(rl.requests)))
}

func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	var recent []time.Time
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	return recent
}
