package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/otlink"
)

type LinkRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewLinkRepository(pool *pgxpool.Pool, log *slog.Logger) *LinkRepository {
	return &LinkRepository{
		pool: pool,
		log:  log.With("component", "otlink_repository"),
	}
}

func (r *LinkRepository) Create(ctx context.Context, l *otlink.Link) error {
	const query = `
		INSERT INTO ot_links (id, owner_id, encrypted_payload, salt, iv, expiry, single_use, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.OwnerID, l.EncryptedPayload, l.Salt, l.IV, l.Expiry, l.SingleUse, l.Used, l.CreatedAt)
	if err != nil {
		r.log.Error("failed to create ot link", "user_id", l.OwnerID, "error", err)
		return fmt.Errorf("insert ot link: %w", err)
	}

	return nil
}

// Fetch relies on row locking: a concurrent fetch of the same single-use link
// re-checks "used" after the first commits and matches nothing.
func (r *LinkRepository) Fetch(ctx context.Context, id uuid.UUID, now time.Time) (*otlink.Link, error) {
	const query = `
		UPDATE ot_links
		SET used = (used OR single_use)
		WHERE id = $1 AND used = FALSE AND expiry > $2
		RETURNING id, owner_id, encrypted_payload, salt, iv, expiry, single_use, used, created_at`

	var l otlink.Link
	err := r.pool.QueryRow(ctx, query, id, now).Scan(
		&l.ID, &l.OwnerID, &l.EncryptedPayload, &l.Salt, &l.IV,
		&l.Expiry, &l.SingleUse, &l.Used, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, otlink.ErrNotFound
		}
		return nil, fmt.Errorf("fetch ot link: %w", err)
	}

	l.Expiry = l.Expiry.UTC()
	l.CreatedAt = l.CreatedAt.UTC()

	return &l, nil
}

func (r *LinkRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ot_links WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete ot link", "ot_link_id", id, "error", err)
		return fmt.Errorf("delete ot link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return otlink.ErrNotFound
	}

	return nil
}
