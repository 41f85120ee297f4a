package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ConfigSource supplies the four pieces of CORS policy. The production
// implementation reads environment variables; tests substitute fixed values.
type ConfigSource interface {
	LoadOrigins() ([]string, error)
	LoadMethods() ([]string, error)
	LoadHeaders() ([]string, error)
	LoadMaxAge() (int, error)
}

// EnvConfigSource loads CORS policy from the environment:
//
//	CORS_ALLOWED_ORIGINS  comma-separated origins (required)
//	CORS_ALLOWED_METHODS  comma-separated methods (optional)
//	CORS_ALLOWED_HEADERS  comma-separated headers (optional)
//	CORS_MAX_AGE          preflight cache seconds (optional)
type EnvConfigSource struct{}

var defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

var defaultHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Trace-ID"}

// LoadOrigins parses CORS_ALLOWED_ORIGINS. The variable is required: an
// API that serves a browser frontend must name it explicitly rather than
// default open.
func (s *EnvConfigSource) LoadOrigins() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if err := checkOrigin(o); err != nil {
			return nil, err
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}
	return origins, nil
}

// checkOrigin rejects anything that is not a bare scheme://host[:port].
func checkOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if strings.HasSuffix(origin, "/") || (u.Path != "" && u.Path != "/") {
		return fmt.Errorf("origin must not include a path or trailing slash: %s", origin)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include query or fragment: %s", origin)
	}
	return nil
}

// LoadMethods parses CORS_ALLOWED_METHODS, defaulting to the full CRUD set.
func (s *EnvConfigSource) LoadMethods() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS"))
	if raw == "" {
		return defaultMethods, nil
	}

	valid := map[string]bool{}
	for _, m := range defaultMethods {
		valid[m] = true
	}

	var methods []string
	for _, m := range strings.Split(raw, ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if !valid[m] {
			return nil, fmt.Errorf("invalid HTTP method '%s' in CORS_ALLOWED_METHODS", m)
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("at least one valid HTTP method must be configured in CORS_ALLOWED_METHODS")
	}
	return methods, nil
}

// LoadHeaders parses CORS_ALLOWED_HEADERS. The default covers the headers
// the frontend actually sends.
func (s *EnvConfigSource) LoadHeaders() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS"))
	if raw == "" {
		return defaultHeaders, nil
	}

	var headers []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, h)
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("at least one valid header must be configured in CORS_ALLOWED_HEADERS")
	}
	return headers, nil
}

// LoadMaxAge parses CORS_MAX_AGE, defaulting to 24 hours.
func (s *EnvConfigSource) LoadMaxAge() (int, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE"))
	if raw == "" {
		return 86400, nil
	}
	maxAge, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid CORS_MAX_AGE '%s': must be a valid integer", raw)
	}
	if maxAge < 0 {
		return 0, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", maxAge)
	}
	return maxAge, nil
}

// LoadCORSConfig builds the CORS policy from environment variables.
// The caller injects a Logger afterwards.
func LoadCORSConfig() (*CORSConfig, error) {
	return LoadCORSConfigFromSource(&EnvConfigSource{}, nil)
}

// LoadCORSConfigFromSource builds the CORS policy from an arbitrary source.
func LoadCORSConfigFromSource(source ConfigSource, logger CORSLogger) (*CORSConfig, error) {
	origins, err := source.LoadOrigins()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed origins: %w", err)
	}
	methods, err := source.LoadMethods()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed methods: %w", err)
	}
	headers, err := source.LoadHeaders()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed headers: %w", err)
	}
	maxAge, err := source.LoadMaxAge()
	if err != nil {
		return nil, fmt.Errorf("failed to load max age: %w", err)
	}

	return &CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           maxAge,
		Validator:        NewWhitelistValidator(origins),
		Logger:           logger,
	}, nil
}
