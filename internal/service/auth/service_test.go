package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	err  error
	reqs CredentialRequirements
}

func (p *stubProvider) ValidateCredentials(_ context.Context, _ Credentials) error { return p.err }
func (p *stubProvider) GetRequirements() CredentialRequirements                    { return p.reqs }
func (p *stubProvider) Name() string                                               { return "stub" }

func TestAuthService_ValidateCredentials(t *testing.T) {
	t.Run("accepts when provider accepts", func(t *testing.T) {
		svc := NewAuthService(&stubProvider{}, nil)
		creds := Credentials{Email: "owner@example.com", Password: "correct horse"}

		assert.NoError(t, svc.ValidateCredentials(context.Background(), creds))
	})

	t.Run("propagates provider rejection", func(t *testing.T) {
		wantErr := errors.New("invalid credentials")
		svc := NewAuthService(&stubProvider{err: wantErr}, nil)

		err := svc.ValidateCredentials(context.Background(), Credentials{})
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestAuthService_IsPublicEndpoint(t *testing.T) {
	svc := NewAuthService(&stubProvider{}, []string{"/health", "/metrics", "/auth/token"})

	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/ready", true}, // prefix match
		{"/metrics", true},
		{"/auth/token", true},
		{"/bookstores", false},
		{"/bookstores/mine", false},
		{"/", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.IsPublicEndpoint(tt.path), "path %q", tt.path)
	}
}

func TestAuthService_IsPublicEndpoint_NoneConfigured(t *testing.T) {
	svc := NewAuthService(&stubProvider{}, nil)
	assert.False(t, svc.IsPublicEndpoint("/health"))
}

func TestAuthService_GetProvider(t *testing.T) {
	p := &stubProvider{}
	assert.Same(t, AuthProvider(p), NewAuthService(p, nil).GetProvider())
}
