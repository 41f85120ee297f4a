package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	authservice "bookmap/internal/service/auth"
)

// UserListProvider implements environment-based authentication for a fixed
// set of users. Accounts are configured via the AUTH_USERS environment
// variable as comma-separated "email:password" pairs.
type UserListProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// NewUserListProvider creates a new user-list auth provider.
func NewUserListProvider(minPasswordLength int, weakPasswords []string) *UserListProvider {
	return &UserListProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials validates credentials against the configured user list.
func (p *UserListProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	// Check if credentials are empty
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}

	// Check password length
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	// Check for weak passwords
	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	// Compare against every configured account using constant-time comparison
	// to avoid leaking which emails exist through timing.
	matched := false
	for _, account := range configuredUsers() {
		emailMatch := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(account.email)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(account.password)) == 1
		if emailMatch && passMatch {
			matched = true
		}
	}
	if !matched {
		return fmt.Errorf("invalid credentials")
	}

	return nil
}

// GetRequirements returns the password requirements.
func (p *UserListProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *UserListProvider) Name() string {
	return "user-list"
}

type userAccount struct {
	email    string
	password string
}

// configuredUsers parses the AUTH_USERS environment variable. Malformed
// entries are skipped; passwords may contain ':' since only the first
// separator splits the pair.
func configuredUsers() []userAccount {
	raw := os.Getenv("AUTH_USERS")
	if raw == "" {
		return nil
	}

	var accounts []userAccount
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		email, password, ok := strings.Cut(pair, ":")
		if !ok || email == "" || password == "" {
			continue
		}
		accounts = append(accounts, userAccount{email: email, password: password})
	}
	return accounts
}
