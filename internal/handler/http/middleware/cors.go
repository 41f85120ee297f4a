// Package middleware provides the outer HTTP middleware for the API server:
// CORS handling for the map frontend and IP-based rate limiting for the
// token endpoint.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// OriginValidator decides whether a request origin may receive CORS headers.
type OriginValidator interface {
	IsAllowed(origin string) bool
	// GetAllowedOrigins returns the configured origins for startup logging.
	GetAllowedOrigins() []string
}

// CORSLogger receives CORS diagnostics. The map-based fields keep the
// package free of a hard logging dependency; see SlogAdapter.
type CORSLogger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// CORSConfig is the policy applied by the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string

	// AllowCredentials must stay true: the frontend sends the JWT in an
	// Authorization header.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	Validator OriginValidator
	Logger    CORSLogger
}

// CORS returns a middleware enforcing the given policy.
//
// Same-origin requests (no Origin header) pass through untouched. A
// disallowed origin is logged and forwarded without CORS headers, letting
// the browser block the response. Allowed preflights are answered directly
// with 204.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the origin rather than "*"; wildcards are rejected by
			// browsers when credentials are in play.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
