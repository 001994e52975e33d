package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{name: "valid", email: "alice@example.com"},
		{name: "valid plus tag", email: "alice+vault@example.com"},
		{name: "empty", email: "", wantErr: true, expectedErr: "email is required"},
		{name: "no at sign", email: "alice.example.com", wantErr: true, expectedErr: "email is not a valid address"},
		{name: "display name", email: "Alice <alice@example.com>", wantErr: true, expectedErr: "email is not a valid address"},
		{name: "surrounding space", email: " alice@example.com", wantErr: true, expectedErr: "email is not a valid address"},
		{
			name:        "too long",
			email:       strings.Repeat("a", 250) + "@x.io",
			wantErr:     true,
			expectedErr: "email must be at most 254 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialValidator_ValidatePassword(t *testing.T) {
	validator := NewCredentialValidator()

	tests := []struct {
		name        string
		password    string
		wantErr     bool
		expectedErr string
	}{
		{name: "minimum length", password: "12345678"},
		{name: "maximum length", password: strings.Repeat("p", 128)},
		{name: "multibyte counted as runes", password: "пароль12"},
		{name: "too short", password: "short", wantErr: true, expectedErr: "password must be at least 8 characters"},
		{name: "too long", password: strings.Repeat("p", 129), wantErr: true, expectedErr: "password must be at most 128 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialValidator_ValidateRegister(t *testing.T) {
	validator := NewCredentialValidator()

	assert.NoError(t, validator.ValidateRegister("bob@example.com", "long-enough"))

	err := validator.ValidateRegister("bob", "long-enough")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister("bob@example.com", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")
}
