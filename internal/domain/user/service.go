package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Hasher hashes and verifies stored passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type Servicer interface {
	Register(ctx context.Context, email, password string, masterSalt []byte) (*User, error)
	Provision(ctx context.Context, email, password string, createdBy *uuid.UUID) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type Service struct {
	repo      Repository
	hasher    Hasher
	validator Validator
	now       func() time.Time
	log       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher Hasher, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
		now:       time.Now,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Register(ctx context.Context, email, password string, masterSalt []byte) (*User, error) {
	return s.create(ctx, email, password, masterSalt, nil)
}

// Provision creates an account on behalf of an administrator.
func (s *Service) Provision(ctx context.Context, email, password string, createdBy *uuid.UUID) (*User, error) {
	if createdBy != nil {
		if _, err := s.FindByID(ctx, *createdBy); err != nil {
			return nil, fmt.Errorf("find provisioning user: %w", err)
		}
	}

	return s.create(ctx, email, password, nil, createdBy)
}

func (s *Service) create(ctx context.Context, email, password string, masterSalt []byte, createdBy *uuid.UUID) (*User, error) {
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("validation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
		MasterSalt:   masterSalt,
		CreatedBy:    createdBy,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.log.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", "user_id", u.ID)

	return u, nil
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a wrong
// password, and spends a hash verification in either case.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.burnVerify(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		s.log.Warn("stored password hash rejected", "user_id", u.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	at := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, at); err != nil {
		s.log.Error("failed to update last login", "user_id", u.ID, "error", err)
		return nil, fmt.Errorf("update last login: %w", err)
	}
	u.LastLogin = &at

	return u, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}

func (s *Service) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.log.Error("failed to prepare dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})

	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
