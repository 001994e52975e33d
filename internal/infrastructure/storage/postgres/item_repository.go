package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/item"
)

type ItemRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewItemRepository(pool *pgxpool.Pool, log *slog.Logger) *ItemRepository {
	return &ItemRepository{
		pool: pool,
		log:  log.With("component", "item_repository"),
	}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	const query = `
		INSERT INTO items (id, owner_id, title_hmac, encrypted_blob, iv, salt, version, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		it.ID, it.OwnerID, it.TitleHMAC, it.EncryptedBlob, it.IV, it.Salt,
		it.Version, it.Tags, it.CreatedAt, it.UpdatedAt,
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
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
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
		WHERE owner_id = $1 AND title_hmac = $2
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID, titleHMAC)
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
		WHERE id = $1 AND owner_id = $2`

	var it item.Item
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&it.ID, &it.OwnerID, &it.TitleHMAC, &it.EncryptedBlob, &it.IV, &it.Salt,
		&it.Version, &it.Tags, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	it.CreatedAt = it.CreatedAt.UTC()
	it.UpdatedAt = it.UpdatedAt.UTC()

	return &it, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	const query = `
		UPDATE items
		SET title_hmac = $1, encrypted_blob = $2, iv = $3, salt = $4,
		    version = $5, tags = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9`

	tag, err := r.pool.Exec(ctx, query,
		it.TitleHMAC, it.EncryptedBlob, it.IV, it.Salt, it.Version, it.Tags, it.UpdatedAt,
		it.ID, it.OwnerID,
	)
	if err != nil {
		r.log.Error("failed to update item", "item_id", it.ID, "error", err)
		return fmt.Errorf("update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return item.ErrNotFound
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		r.log.Error("failed to delete item", "item_id", id, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return item.ErrNotFound
	}

	return nil
}

func scanMetas(rows pgx.Rows) ([]item.Meta, error) {
	metas := []item.Meta{}

	for rows.Next() {
		var m item.Meta
		if err := rows.Scan(&m.ID, &m.TitleHMAC, &m.Tags, &m.Version, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		m.UpdatedAt = m.UpdatedAt.UTC()
		metas = append(metas, m)
	}

	return metas, rows.Err()
}
