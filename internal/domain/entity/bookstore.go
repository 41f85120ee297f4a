// Package entity defines the core domain entities and validation logic for the application.
// It contains the canonical Bookstore record shared by both data sources, along with
// validation rules and domain-specific errors.
package entity

import "time"

// Fallback values applied during normalization when source data is missing or unparsable.
const (
	// FallbackLatitude and FallbackLongitude point at Seoul City Hall and replace
	// coordinates that fail to parse as finite numbers.
	FallbackLatitude  = 37.5665
	FallbackLongitude = 126.978

	// DefaultCategory replaces an absent or blank category so that every entry
	// carries a non-empty category label.
	DefaultCategory = "기타"
)

// ID namespace prefixes. External and user-submitted entries live in disjoint
// identifier spaces so an upstream ID can never collide with a store-assigned one.
const (
	ExternalIDPrefix = "ext:"
	UserIDPrefix     = "usr:"
)

// Bookstore is the canonical, normalized representation of a bookstore
// regardless of which source it came from.
//
// Optional fields (Phone, OpenTime, CloseTime, ClosedDays, Description) are
// either a meaningful non-empty string or empty, meaning absent. They are never
// persisted as empty placeholders.
//
// UserAdded records provenance and is immutable once set: false for entries
// adapted from the public directory, true for entries created through the
// persistence gateway. CreatedBy and CreatedAt are populated only for
// user-submitted entries.
type Bookstore struct {
	ID          string
	Name        string
	Address     string
	Latitude    float64
	Longitude   float64
	Category    string
	Phone       string
	OpenTime    string
	CloseTime   string
	ClosedDays  string
	Description string
	UserAdded   bool
	CreatedBy   string
	CreatedAt   *time.Time
}

// Validate checks the fields required for a user-submitted bookstore.
// Adapter output from the public directory is not validated here; the adapter
// guarantees its own invariants.
func (b *Bookstore) Validate() error {
	if b.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if b.Address == "" {
		return &ValidationError{Field: "address", Message: "is required"}
	}
	if !isFiniteCoordinate(b.Latitude, -90, 90) {
		return &ValidationError{Field: "latitude", Message: "must be a finite value between -90 and 90"}
	}
	if !isFiniteCoordinate(b.Longitude, -180, 180) {
		return &ValidationError{Field: "longitude", Message: "must be a finite value between -180 and 180"}
	}
	return nil
}

func isFiniteCoordinate(v, min, max float64) bool {
	// NaN fails every comparison, so the range check also rejects NaN.
	return v >= min && v <= max
}
