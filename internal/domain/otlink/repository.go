package otlink

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, link *Link) error
	// Fetch returns the link only if it is active at now. A single-use link is
	// marked used by the same statement, so concurrent callers get at most one hit.
	Fetch(ctx context.Context, id uuid.UUID, now time.Time) (*Link, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
