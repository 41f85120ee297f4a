package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params are the client-supplied pagination parameters. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads ?page= and ?limit= from the request, filling in
// config defaults for absent parameters. A non-numeric, zero, negative, or
// over-the-cap value is an error rather than a silent correction, so the
// handler can answer 400.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Page: config.DefaultPage, Limit: config.DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// Validate reports whether p is usable under config.
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// WithDefaults replaces non-positive fields with the configured defaults
// and caps Limit at config.MaxLimit. Unlike Validate it never fails, which
// makes it suitable for internal callers that construct Params themselves.
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
