package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/otlink"
)

type LinkRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewLinkRepository(db *sql.DB, log *slog.Logger) *LinkRepository {
	return &LinkRepository{
		db:  db,
		log: log.With("component", "otlink_repository"),
	}
}

func (r *LinkRepository) Create(ctx context.Context, l *otlink.Link) error {
	const query = `
		INSERT INTO ot_links (id, owner_id, encrypted_payload, salt, iv, expiry, single_use, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.OwnerID, l.EncryptedPayload, l.Salt, l.IV,
		toNanos(l.Expiry), l.SingleUse, l.Used, toNanos(l.CreatedAt))
	if err != nil {
		r.log.Error("failed to create ot link", "user_id", l.OwnerID, "error", err)
		return fmt.Errorf("insert ot link: %w", err)
	}

	return nil
}

// Fetch consumes single-use links in the same statement that reads them.
func (r *LinkRepository) Fetch(ctx context.Context, id uuid.UUID, now time.Time) (*otlink.Link, error) {
	const query = `
		UPDATE ot_links
		SET used = (used OR single_use)
		WHERE id = ? AND used = 0 AND expiry > ?
		RETURNING id, owner_id, encrypted_payload, salt, iv, expiry, single_use, used, created_at`

	var (
		l                 otlink.Link
		expiry, createdAt int64
	)

	err := r.db.QueryRowContext(ctx, query, id, toNanos(now)).Scan(
		&l.ID, &l.OwnerID, &l.EncryptedPayload, &l.Salt, &l.IV,
		&expiry, &l.SingleUse, &l.Used, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, otlink.ErrNotFound
		}
		return nil, fmt.Errorf("fetch ot link: %w", err)
	}

	l.Expiry = fromNanos(expiry)
	l.CreatedAt = fromNanos(createdAt)

	return &l, nil
}

func (r *LinkRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ot_links WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete ot link", "ot_link_id", id, "error", err)
		return fmt.Errorf("delete ot link: %w", err)
	}

	return requireAffected(res, otlink.ErrNotFound)
}
