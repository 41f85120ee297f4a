package normalize

import "strings"

// Phone formats a raw phone value into the canonical hyphenated form.
//
// All non-digit characters are stripped first. A digit string without a leading
// zero gains one (the directory omits it for some landlines). The hyphen
// positions then depend on the prefix:
//
//	02 (Seoul landline):  9 digits → 2-3-4, 10 digits → 2-4-4
//	010 (mobile):         10 digits → 3-3-4, 11 digits → 3-4-4
//	other area codes:     10 digits → 3-3-4, 11 digits → 3-4-4
//
// Input with no digits at all returns "" (absent). Any digit count that does
// not match a known pattern returns the original input untouched, so an
// unrecognized number is displayed as-is rather than corrupted.
func Phone(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}

	switch {
	case strings.HasPrefix(digits, "02"):
		switch len(digits) {
		case 9:
			return digits[:2] + "-" + digits[2:5] + "-" + digits[5:]
		case 10:
			return digits[:2] + "-" + digits[2:6] + "-" + digits[6:]
		}
	case strings.HasPrefix(digits, "010"):
		switch len(digits) {
		case 10:
			return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
		case 11:
			return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
		}
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}

	return raw
}
