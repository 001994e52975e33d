package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
	TwoFAEnabled bool
	TwoFASecret  *string
	MasterSalt   []byte
	CreatedBy    *uuid.UUID
}
