package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
)

type AuditRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewAuditRepository(pool *pgxpool.Pool, log *slog.Logger) *AuditRepository {
	return &AuditRepository{
		pool: pool,
		log:  log.With("component", "audit_repository"),
	}
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Entry) (int64, error) {
	const query = `
		INSERT INTO audit_logs (user_id, action, ip_address, user_agent, details, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	details := e.Details
	if details == nil {
		details = map[string]any{}
	}

	var id int64
	err := r.pool.QueryRow(ctx, query, e.UserID, e.Action, e.IP, e.UserAgent, details, e.TS).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}

	e.ID = id
	return id, nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]audit.Entry, error) {
	const query = `
		SELECT id, user_id, action, ip_address, user_agent, details, ts
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY ts DESC, id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.IP, &e.UserAgent, &e.Details, &e.TS); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.TS = e.TS.UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
