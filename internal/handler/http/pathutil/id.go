package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts a bookstore ID from a URL path.
// It removes the specified prefix and validates the remaining segment.
// IDs are opaque strings such as "usr:1a2b3c4d" or "ext:130588"; the only
// structural requirements are that the segment is non-empty and contains
// no further path separators.
//
// Example:
//
//	id, err := ExtractID("/bookstores/usr:1a2b3c4d", "/bookstores/")
//	// Returns: "usr:1a2b3c4d", nil
func ExtractID(path, prefix string) (string, error) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || id == path || strings.Contains(id, "/") {
		return "", ErrInvalidID
	}
	return id, nil
}
