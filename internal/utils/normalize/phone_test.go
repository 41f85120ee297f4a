package normalize_test

import (
	"testing"

	"bookmap/internal/utils/normalize"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mobile already hyphenated", "010-1234-5678", "010-1234-5678"},
		{"mobile bare digits", "01012345678", "010-1234-5678"},
		{"mobile with spaces", "010 1234 5678", "010-1234-5678"},
		{"ten digit mobile", "0101235678", "010-123-5678"},
		{"seoul nine digits", "023456789", "02-345-6789"},
		{"seoul ten digits", "0234567890", "02-3456-7890"},
		{"seoul with dots", "02.345.6789", "02-345-6789"},
		{"area code ten digits", "0313456789", "031-345-6789"},
		{"area code eleven digits", "03134567890", "031-3456-7890"},
		{"leading zero restored", "3134567890", "031-3456-7890"},
		{"empty input is absent", "", ""},
		{"no digits is absent", "no phone", ""},
		{"unknown seven digit number returned untouched", "1234567", "1234567"},
		{"seoul number of odd length returned untouched", "02-12345678901", "02-12345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize.Phone(tt.input); got != tt.expected {
				t.Errorf("Phone(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
