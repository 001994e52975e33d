package user

import (
	"time"

	"github.com/google/uuid"
)

type meOutput struct {
	Body Profile
}

// Profile is the caller's account as exposed over HTTP. Hashes and 2FA secrets stay server-side.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	TwoFAEnabled bool       `json:"two_fa_enabled"`
	MasterSalt   []byte     `json:"master_salt"`
}
