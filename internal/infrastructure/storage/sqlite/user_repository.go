package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/user"
)

const userColumns = `id, email, password_hash, created_at, last_login,
       two_fa_enabled, two_fa_secret, master_salt, created_by`

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(db *sql.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, created_at, two_fa_enabled, master_salt, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, toNanos(u.CreatedAt), u.TwoFAEnabled, u.MasterSalt, u.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scan(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scan(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, toNanos(at), id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (r *UserRepository) scan(row *sql.Row) (*user.User, error) {
	var (
		u         user.User
		createdAt int64
		lastLogin sql.NullInt64
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &createdAt, &lastLogin,
		&u.TwoFAEnabled, &u.TwoFASecret, &u.MasterSalt, &u.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.CreatedAt = fromNanos(createdAt)
	u.LastLogin = fromNullableNanos(lastLogin)

	return &u, nil
}
