// Package auth holds the framework-agnostic authentication service: the
// provider abstraction, credential types, and the public-endpoint policy.
package auth

import (
	"context"
	"strings"
)

// Credentials is an email/password pair presented for token issuance.
type Credentials struct {
	Email    string
	Password string
}

// CredentialRequirements is the password policy a provider enforces.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider validates credentials. Implementations range from the
// env-backed provider used in development to external identity systems.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	GetRequirements() CredentialRequirements
	Name() string
}

// AuthService wraps a provider with the routing policy of which paths
// skip authentication entirely.
type AuthService struct {
	provider        AuthProvider
	publicEndpoints []string
}

// NewAuthService builds a service over provider. publicEndpoints are
// path prefixes that bypass authentication.
func NewAuthService(provider AuthProvider, publicEndpoints []string) *AuthService {
	return &AuthService{provider: provider, publicEndpoints: publicEndpoints}
}

// ValidateCredentials delegates to the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IsPublicEndpoint reports whether path matches a public prefix.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, prefix := range s.publicEndpoints {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// GetProvider exposes the underlying provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
