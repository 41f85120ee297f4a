package fetcher

import (
	"math"
	"strconv"

	"bookmap/internal/domain/entity"
	"bookmap/internal/utils/normalize"
)

// Adapt converts one raw directory record into a domain entity.
//
// Field rules:
//   - ID is namespaced with the external prefix so it can never collide with a
//     store-assigned identifier.
//   - Coordinates that fail to parse fall back to the fixed default.
//   - Category prefers the sub-category, then the top category, then the
//     default label, so an adapted entity never leaves with an empty category.
//   - Phone and business hours go through the normalizers; unusable values
//     end up absent rather than corrupted.
//   - Description prefers the extra description over the option text.
//
// Adapter output is always externally sourced and carries no owner.
func Adapt(rec Record) *entity.Bookstore {
	return &entity.Bookstore{
		ID:          entity.ExternalIDPrefix + rec.ID,
		Name:        rec.Name,
		Address:     rec.RoadAddress,
		Latitude:    parseCoordinate(rec.Latitude, entity.FallbackLatitude),
		Longitude:   parseCoordinate(rec.Longitude, entity.FallbackLongitude),
		Category:    firstNonEmpty(rec.SubCategory, rec.TopCategory, entity.DefaultCategory),
		Phone:       normalize.Phone(rec.Phone),
		OpenTime:    normalize.FractionToClock(rec.OpenTime),
		CloseTime:   normalize.FractionToClock(rec.CloseTime),
		ClosedDays:  rec.ClosedDays,
		Description: firstNonEmpty(rec.Extra, rec.Option),
		UserAdded:   false,
	}
}

func parseCoordinate(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
