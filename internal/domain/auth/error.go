package auth

import (
	"passvault/internal/domain/session"
	"passvault/internal/domain/user"
)

// Re-exported so handlers only need this package for auth outcomes.
var (
	ErrDuplicateEmail     = user.ErrDuplicateEmail
	ErrInvalidCredentials = user.ErrInvalidCredentials
	ErrInvalidInput       = user.ErrInvalidInput
	ErrInvalidToken       = session.ErrInvalidToken
)
