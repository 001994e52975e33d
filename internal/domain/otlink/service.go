package otlink

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
	Create(ctx context.Context, ownerID uuid.UUID, draft Draft) (*Link, error)
	Fetch(ctx context.Context, id uuid.UUID) (*Link, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
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
		log:   log.With("component", "otlink_service"),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create stores a new link. An expiry in the past is accepted; such a link is never fetchable.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, draft Draft) (*Link, error) {
	if draft.EncryptedPayload == nil || draft.IV == nil || draft.Salt == nil || draft.Expiry.IsZero() {
		return nil, ErrInvalidData
	}

	link := &Link{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		EncryptedPayload: draft.EncryptedPayload,
		IV:               draft.IV,
		Salt:             draft.Salt,
		Expiry:           draft.Expiry.UTC().Truncate(time.Microsecond),
		SingleUse:        draft.SingleUse,
		CreatedAt:        s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.Create(ctx, link); err != nil {
		s.log.Error("failed to create ot link", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("create ot link: %w", err)
	}

	s.log.Info("ot link created", "ot_link_id", link.ID, "user_id", ownerID, "single_use", link.SingleUse)
	s.audit.Record(ctx, &ownerID, audit.ActionLinkCreated, map[string]any{
		"ot_link_id": link.ID.String(),
		"single_use": link.SingleUse,
	})

	return link, nil
}

// Fetch is unauthenticated. A single-use link comes back already marked used.
func (s *Service) Fetch(ctx context.Context, id uuid.UUID) (*Link, error) {
	link, err := s.repo.Fetch(ctx, id, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to fetch ot link", "ot_link_id", id, "error", err)
		return nil, fmt.Errorf("fetch ot link: %w", err)
	}

	s.log.Info("ot link fetched", "ot_link_id", id)
	s.audit.Record(ctx, nil, audit.ActionLinkFetched, map[string]any{"ot_link_id": id.String()})

	return link, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete ot link", "ot_link_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete ot link: %w", err)
	}

	s.log.Info("ot link deleted", "ot_link_id", id, "user_id", ownerID)
	s.audit.Record(ctx, &ownerID, audit.ActionLinkDeleted, map[string]any{"ot_link_id": id.String()})

	return nil
}
