package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
)

type AuditRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewAuditRepository(db *sql.DB, log *slog.Logger) *AuditRepository {
	return &AuditRepository{
		db:  db,
		log: log.With("component", "audit_repository"),
	}
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Entry) (int64, error) {
	const query = `
		INSERT INTO audit_logs (user_id, action, ip_address, user_agent, details, ts)
		VALUES (?, ?, ?, ?, ?, ?)`

	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	encoded, err := encodeJSON(details, false)
	if err != nil {
		return 0, fmt.Errorf("encode audit details: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, e.UserID, e.Action, e.IP, e.UserAgent, encoded, toNanos(e.TS))
	if err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("audit entry id: %w", err)
	}

	e.ID = id
	return id, nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]audit.Entry, error) {
	const query = `
		SELECT id, user_id, action, ip_address, user_agent, details, ts
		FROM audit_logs
		WHERE user_id = ?
		ORDER BY ts DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var (
			e       audit.Entry
			details sql.NullString
			ts      int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.IP, &e.UserAgent, &details, &ts); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if details.Valid {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		e.TS = fromNanos(ts)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
