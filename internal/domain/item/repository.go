package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository methods are owner-scoped: a row owned by someone else is ErrNotFound.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	List(ctx context.Context, ownerID uuid.UUID) ([]Meta, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByTitleHMAC(ctx context.Context, ownerID uuid.UUID, titleHMAC string) ([]Meta, error)
}
