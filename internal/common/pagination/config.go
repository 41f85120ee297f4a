// Package pagination implements offset pagination for the bookstore
// listings: parameter parsing, response metadata, and the Prometheus and
// slog instrumentation that goes with it.
package pagination

import (
	"os"
	"strconv"
)

// Config bounds what clients may request per page.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT. Unset or unparsable values fall back to the
// defaults; the server should not refuse to boot over a pagination knob.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.DefaultPage = envInt("PAGINATION_DEFAULT_PAGE", cfg.DefaultPage)
	cfg.DefaultLimit = envInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.MaxLimit = envInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit)
	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
