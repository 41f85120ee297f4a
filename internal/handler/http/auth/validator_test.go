package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfiguredUsers(t *testing.T) {
	t.Run("valid accounts pass", func(t *testing.T) {
		t.Setenv("AUTH_USERS", "owner@example.com:rainy-harbor-lantern,editor@example.com:quiet-meadow-copper")
		assert.NoError(t, ValidateConfiguredUsers())
	})

	t.Run("empty AUTH_USERS rejected", func(t *testing.T) {
		t.Setenv("AUTH_USERS", "")
		err := ValidateConfiguredUsers()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTH_USERS")
	})

	t.Run("weak password names the account", func(t *testing.T) {
		t.Setenv("AUTH_USERS", "owner@example.com:password1234")
		err := ValidateConfiguredUsers()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner@example.com")
		assert.NotContains(t, err.Error(), "password1234")
	})
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "strong passphrase", password: "rainy-harbor-lantern"},
		{name: "long mixed password", password: "Tr1cky&Sturdy!Phrase"},
		{name: "too short", password: "short1!", wantErr: "at least 12 characters"},
		{name: "exact weak word padded short", password: "admin1234567890", wantErr: "common weak passwords"},
		{name: "ascending digits", password: "123456789012", wantErr: "numeric pattern"},
		{name: "descending digits", password: "987654321098", wantErr: "numeric pattern"},
		{name: "ascending with wrap", password: "890123456789", wantErr: "numeric pattern"},
		{name: "repeated character", password: "aaaaaaaaaaaa", wantErr: "numeric pattern"},
		{name: "keyboard walk", password: "xxqwertyuiopxx", wantErr: "keyboard pattern"},
		{name: "reversed keyboard walk", password: "xxpoiuytrewqxx", wantErr: "keyboard pattern"},
		{name: "weak word buried mid-password ok", password: "my-secretive-garden-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIsNumericSequence(t *testing.T) {
	assert.True(t, isNumericSequence("111111111111"))
	assert.True(t, isNumericSequence("123456789012"))
	assert.False(t, isNumericSequence("12345"), "below minimum length never matches")
	assert.False(t, isNumericSequence("135791357913"), "non-consecutive digits")
	assert.False(t, isNumericSequence("12345678901a"))
}
