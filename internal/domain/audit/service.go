package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Recorder is what other domains depend on to leave an audit trail.
// Record never fails the caller: write errors are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action string, details map[string]any)
}

type Servicer interface {
	Recorder
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With("component", "audit_service"),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Record(ctx context.Context, userID *uuid.UUID, action string, details map[string]any) {
	client := ClientFrom(ctx)

	entry := &Entry{
		UserID:    userID,
		Action:    action,
		IP:        optional(client.IP),
		UserAgent: optional(client.UserAgent),
		Details:   details,
		TS:        s.now().UTC(),
	}

	// detached from request cancellation
	id, err := s.repo.Append(context.WithoutCancel(ctx), entry)
	if err != nil {
		s.log.Error("failed to write audit entry", "action", action, "error", err)
		return
	}

	s.log.Debug("audit entry written", "id", id, "action", action)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID, DefaultListLimit)
	if err != nil {
		s.log.Error("failed to list audit entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}
