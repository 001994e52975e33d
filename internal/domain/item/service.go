package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
)

type Servicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, draft Draft) (*Item, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Meta, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Item, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch Patch) (*Item, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Search(ctx context.Context, ownerID uuid.UUID, titleHMAC string) ([]Meta, error)
}

type Service struct {
	repo  Repository
	audit audit.Recorder
	now   func() time.Time
	log   *slog.Logger
}

func NewService(repo Repository, recorder audit.Recorder, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		audit: recorder,
		now:   time.Now,
		log:   log.With("component", "item_service"),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// stored timestamps keep microsecond precision on every backend
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, draft Draft) (*Item, error) {
	if draft.EncryptedBlob == nil || draft.IV == nil || draft.Salt == nil {
		return nil, ErrInvalidData
	}

	version := draft.Version
	if version == 0 {
		version = 1
	}

	now := s.timestamp()
	item := &Item{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		TitleHMAC:     draft.TitleHMAC,
		EncryptedBlob: draft.EncryptedBlob,
		IV:            draft.IV,
		Salt:          draft.Salt,
		Version:       version,
		Tags:          draft.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error("failed to create item", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("item created", "item_id", item.ID, "user_id", ownerID)
	s.audit.Record(ctx, &ownerID, audit.ActionItemCreated, map[string]any{"item_id": item.ID.String()})

	return item, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Meta, error) {
	items, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list items", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Item, error) {
	item, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get item", "item_id", id, "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("get item: %w", err)
	}

	return item, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, patch Patch) (*Item, error) {
	item, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch.apply(item)

	updatedAt := s.timestamp()
	if !updatedAt.After(item.UpdatedAt) {
		updatedAt = item.UpdatedAt.Add(time.Microsecond)
	}
	item.UpdatedAt = updatedAt

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update item", "item_id", id, "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.log.Info("item updated", "item_id", id, "user_id", ownerID)
	s.audit.Record(ctx, &ownerID, audit.ActionItemUpdated, map[string]any{"item_id": id.String()})

	return item, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete item", "item_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("item deleted", "item_id", id, "user_id", ownerID)
	s.audit.Record(ctx, &ownerID, audit.ActionItemDeleted, map[string]any{"item_id": id.String()})

	return nil
}

// Search is an exact match on the client-computed title HMAC.
func (s *Service) Search(ctx context.Context, ownerID uuid.UUID, titleHMAC string) ([]Meta, error) {
	if titleHMAC == "" {
		return []Meta{}, nil
	}

	items, err := s.repo.FindByTitleHMAC(ctx, ownerID, titleHMAC)
	if err != nil {
		s.log.Error("failed to search items", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("search items: %w", err)
	}

	return items, nil
}
