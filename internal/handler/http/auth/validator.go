package auth

import (
	"fmt"
	"strings"
)

// minPasswordLength applies to passwords configured via AUTH_USERS.
const minPasswordLength = 12

// weakPasswords are rejected outright, and also as prefixes of short
// passwords ("admin1234567890" style padding).
var weakPasswords = []string{
	"admin", "password", "123456", "secret", "admin123",
	"password123", "123456789", "12345678", "qwerty", "abc123",
	"letmein", "welcome", "monkey", "1234567890", "password1",
	"admin1", "test", "test123", "default", "root",
}

// keyboardWalks are common keyboard-row sequences, matched in either
// direction anywhere in the password.
var keyboardWalks = []string{
	"qwertyuiop", "asdfghjkl", "zxcvbnm",
	"qwerty", "asdfgh", "zxcvb",
}

// ValidateConfiguredUsers checks the AUTH_USERS account list at startup.
// The server must not boot with missing accounts or guessable passwords.
// Error messages identify the account but never echo its password.
func ValidateConfiguredUsers() error {
	accounts := configuredUsers()
	if len(accounts) == 0 {
		return fmt.Errorf("user validation failed: AUTH_USERS must contain at least one email:password pair")
	}

	for _, account := range accounts {
		if err := validatePassword(account.password); err != nil {
			return fmt.Errorf("user validation failed for %q: %w", account.email, err)
		}
	}
	return nil
}

func validatePassword(pass string) error {
	if len(pass) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}

	// Pattern checks run before the blacklist so pure digit sequences get
	// the more specific error.
	if isNumericSequence(pass) {
		return fmt.Errorf("password must not be a simple numeric pattern")
	}
	if containsKeyboardWalk(pass) {
		return fmt.Errorf("password must not be a keyboard pattern")
	}

	lower := strings.ToLower(pass)
	for _, weak := range weakPasswords {
		if lower == weak {
			return fmt.Errorf("password must not be a weak password")
		}
		if strings.HasPrefix(lower, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("password must not be based on common weak passwords")
		}
	}

	return nil
}

// isNumericSequence reports repeated single characters and all-digit
// ascending or descending runs, including wraps like 8901 and 1098.
func isNumericSequence(pass string) bool {
	if len(pass) < minPasswordLength {
		return false
	}
	if allSameByte(pass) {
		return true
	}

	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	ascending, descending := true, true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		if diff != 1 && diff != -9 {
			ascending = false
		}
		if diff != -1 && diff != 9 {
			descending = false
		}
	}
	return ascending || descending
}

func allSameByte(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func containsKeyboardWalk(pass string) bool {
	lower := strings.ToLower(pass)
	for _, walk := range keyboardWalks {
		if strings.Contains(lower, walk) || strings.Contains(lower, reverseString(walk)) {
			return true
		}
	}
	return false
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
