package fetcher

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	pkgconfig "bookmap/internal/pkg/config"
	"bookmap/internal/resilience/retry"
)

// Config holds the configuration for the public directory client.
type Config struct {
	// BaseURL is the directory request endpoint.
	BaseURL string

	// ServiceKey authenticates this application against the directory.
	ServiceKey string

	// Timeout bounds a single directory request.
	Timeout time.Duration

	// PageSize is the number of records requested per page. The directory
	// currently holds fewer than 500 records, so the default fetches the
	// whole dataset in one page.
	PageSize int

	// MaxBodySize caps the response body to protect against oversized
	// payloads from a misbehaving upstream.
	MaxBodySize int64

	// RequestsPerSecond and Burst configure the client-side rate limit
	// against the directory.
	RequestsPerSecond float64
	Burst             int

	// Retry governs backoff for transient fetch failures.
	Retry retry.Config
}

// DefaultConfig returns the default directory client configuration.
// The service key has no default; it must come from the environment.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.kcisa.kr/API_CNV_045/request",
		Timeout:           10 * time.Second,
		PageSize:          417,
		MaxBodySize:       10 << 20,
		RequestsPerSecond: 2.0,
		Burst:             5,
		Retry:             retry.DefaultConfig(),
	}
}

// LoadConfigFromEnv builds a Config from environment variables, falling back
// to defaults on invalid values and logging one warning per fallback.
//
// Environment variables:
//   - DIRECTORY_API_URL
//   - DIRECTORY_SERVICE_KEY (required)
//   - DIRECTORY_TIMEOUT
//   - DIRECTORY_PAGE_SIZE
func LoadConfigFromEnv(logger *slog.Logger) (Config, error) {
	cfg := DefaultConfig()

	cfg.BaseURL = pkgconfig.LoadEnvString("DIRECTORY_API_URL", cfg.BaseURL)
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return Config{}, err
	}

	cfg.ServiceKey = pkgconfig.LoadEnvString("DIRECTORY_SERVICE_KEY", "")
	if cfg.ServiceKey == "" {
		return Config{}, fmt.Errorf("DIRECTORY_SERVICE_KEY must be set")
	}

	timeout := pkgconfig.LoadEnvDuration("DIRECTORY_TIMEOUT", cfg.Timeout,
		pkgconfig.ValidatePositiveDuration)
	warnFallbacks(logger, timeout)
	cfg.Timeout = timeout.Value.(time.Duration)

	pageSize := pkgconfig.LoadEnvInt("DIRECTORY_PAGE_SIZE", cfg.PageSize,
		func(v int) error { return pkgconfig.ValidateIntRange(v, 1, 1000) })
	warnFallbacks(logger, pageSize)
	cfg.PageSize = pageSize.Value.(int)

	return cfg, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DIRECTORY_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid DIRECTORY_API_URL: scheme %q not allowed", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid DIRECTORY_API_URL: missing host")
	}
	return nil
}

func warnFallbacks(logger *slog.Logger, result pkgconfig.ConfigLoadResult) {
	for _, w := range result.Warnings {
		logger.Warn("configuration fallback", slog.String("warning", w))
	}
}
