package middleware

import "strings"

// WhitelistValidator allows exactly the configured origins.
// Origins are normalized (lowercased, trailing slash stripped) on both
// sides of the comparison, since browsers are inconsistent about casing
// in the Origin header.
type WhitelistValidator struct {
	allowed []string
}

// NewWhitelistValidator builds a validator from the given origin list.
// Blank entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			normalized = append(normalized, o)
		}
	}
	return &WhitelistValidator{allowed: normalized}
}

// IsAllowed reports whether origin matches a configured entry.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, a := range v.allowed {
		if origin == a {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy of the normalized origin list.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowed))
	copy(out, v.allowed)
	return out
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
