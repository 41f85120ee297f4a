// Package normalize provides pure conversion functions for the irregular field
// encodings used by the public bookstore directory. The directory encodes
// business hours as a fraction of a day and phone numbers as raw digit strings,
// sometimes with arbitrary separators. All functions fail soft: unusable input
// yields an absent result (the empty string), never an error.
package normalize

import (
	"fmt"
	"math"
	"strconv"
)

// FractionToClock converts a fraction-of-day string to a zero-padded "HH:MM"
// 24-hour clock string. The directory encodes "12:00" as "0.5".
//
// Minutes are truncated, not rounded, matching the upstream display convention.
// Empty or non-numeric input returns "" (absent).
func FractionToClock(fraction string) string {
	if fraction == "" {
		return ""
	}
	f, err := strconv.ParseFloat(fraction, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	hours := int(f * 24)
	minutes := int((f*24 - float64(hours)) * 60)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
