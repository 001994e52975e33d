package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
	"passvault/internal/domain/session"
	"passvault/internal/domain/user"
)

type Servicer interface {
	Register(ctx context.Context, email, password string, masterSalt []byte) (Token, error)
	Login(ctx context.Context, email, password string) (Token, error)
	Logout(ctx context.Context) error
	// Resolve turns a bearer token into the user it was issued for.
	Resolve(ctx context.Context, token string) (*user.User, error)
}

type Service struct {
	users    user.Servicer
	sessions session.Servicer
	audit    audit.Recorder
	log      *slog.Logger
}

func NewService(users user.Servicer, sessions session.Servicer, recorder audit.Recorder, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		audit:    recorder,
		log:      log.With("component", "auth_service"),
	}
}

func (s *Service) Register(ctx context.Context, email, password string, masterSalt []byte) (Token, error) {
	u, err := s.users.Register(ctx, email, password, masterSalt)
	if err != nil {
		return Token{}, err
	}

	s.audit.Record(ctx, &u.ID, audit.ActionUserRegistered, nil)

	return s.issue(ctx, u.ID)
}

func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			s.audit.Record(ctx, nil, audit.ActionUserLoginFailed, nil)
		}
		return Token{}, err
	}

	s.audit.Record(ctx, &u.ID, audit.ActionUserLogin, nil)

	return s.issue(ctx, u.ID)
}

// Logout is advisory: tokens are stateless and stay valid until they expire.
func (s *Service) Logout(context.Context) error {
	return nil
}

func (s *Service) Resolve(ctx context.Context, token string) (*user.User, error) {
	subject, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}

	return u, nil
}

func (s *Service) issue(ctx context.Context, id uuid.UUID) (Token, error) {
	access, err := s.sessions.Create(ctx, id.String())
	if err != nil {
		s.log.Error("failed to issue token", "user_id", id, "error", err)
		return Token{}, fmt.Errorf("issue token: %w", err)
	}

	return Token{AccessToken: access, TokenType: TokenTypeBearer}, nil
}
