package directory

import (
	"strings"

	"bookmap/internal/domain/entity"
)

// Filter returns the entries whose name, address, or category contains the
// query as a case-insensitive substring. Whitespace around the query is
// ignored, and an empty query matches everything. The relative order of
// entries is preserved, so user-registered entries stay ahead of directory
// records.
func Filter(stores []*entity.Bookstore, query string) []*entity.Bookstore {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stores
	}

	out := []*entity.Bookstore{}
	for _, b := range stores {
		if strings.Contains(strings.ToLower(b.Name), q) ||
			strings.Contains(strings.ToLower(b.Address), q) ||
			strings.Contains(strings.ToLower(b.Category), q) {
			out = append(out, b)
		}
	}
	return out
}
