package audit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Append(ctx context.Context, entry *Entry) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error)
}
