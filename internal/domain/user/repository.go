package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts u and returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
