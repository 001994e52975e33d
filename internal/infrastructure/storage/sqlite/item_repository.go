package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/item"
)

type ItemRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewItemRepository(db *sql.DB, log *slog.Logger) *ItemRepository {
	return &ItemRepository{
		db:  db,
		log: log.With("component", "item_repository"),
	}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	const query = `
		INSERT INTO items (id, owner_id, title_hmac, encrypted_blob, iv, salt, version, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tags, err := encodeJSON(it.Tags, it.Tags == nil)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		it.ID, it.OwnerID, it.TitleHMAC, it.EncryptedBlob, it.IV, it.Salt,
		it.Version, tags, toNanos(it.CreatedAt), toNanos(it.UpdatedAt),
	)
	if err != nil {
		r.log.Error("failed to create item", "user_id", it.OwnerID, "error", err)
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

func (r *ItemRepository) List(ctx context.Context, ownerID uuid.UUID) ([]item.Meta, error) {
	const query = `
		SELECT id, title_hmac, tags, version, created_at, updated_at
		FROM items
		WHERE owner_id = ?
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return scanMetas(rows)
}

func (r *ItemRepository) FindByTitleHMAC(ctx context.Context, ownerID uuid.UUID, titleHMAC string) ([]item.Meta, error) {
	const query = `
		SELECT id, title_hmac, tags, version, created_at, updated_at
		FROM items
		WHERE owner_id = ? AND title_hmac = ?
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID, titleHMAC)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	return scanMetas(rows)
}

func (r *ItemRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*item.Item, error) {
	const query = `
		SELECT id, owner_id, title_hmac, encrypted_blob, iv, salt, version, tags, created_at, updated_at
		FROM items
		WHERE id = ? AND owner_id = ?`

	var (
		it                   item.Item
		tags                 sql.NullString
		createdAt, updatedAt int64
	)

	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&it.ID, &it.OwnerID, &it.TitleHMAC, &it.EncryptedBlob, &it.IV, &it.Salt,
		&it.Version, &tags, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, item.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	if it.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	it.CreatedAt = fromNanos(createdAt)
	it.UpdatedAt = fromNanos(updatedAt)

	return &it, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	const query = `
		UPDATE items
		SET title_hmac = ?, encrypted_blob = ?, iv = ?, salt = ?,
		    version = ?, tags = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`

	tags, err := encodeJSON(it.Tags, it.Tags == nil)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query,
		it.TitleHMAC, it.EncryptedBlob, it.IV, it.Salt, it.Version, tags, toNanos(it.UpdatedAt),
		it.ID, it.OwnerID,
	)
	if err != nil {
		r.log.Error("failed to update item", "item_id", it.ID, "error", err)
		return fmt.Errorf("update item: %w", err)
	}

	return requireAffected(res, item.ErrNotFound)
}

func (r *ItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete item", "item_id", id, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	return requireAffected(res, item.ErrNotFound)
}

func scanMetas(rows *sql.Rows) ([]item.Meta, error) {
	metas := []item.Meta{}

	for rows.Next() {
		var (
			m                    item.Meta
			tags                 sql.NullString
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&m.ID, &m.TitleHMAC, &tags, &m.Version, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		var err error
		if m.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		m.CreatedAt = fromNanos(createdAt)
		m.UpdatedAt = fromNanos(updatedAt)
		metas = append(metas, m)
	}

	return metas, rows.Err()
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
