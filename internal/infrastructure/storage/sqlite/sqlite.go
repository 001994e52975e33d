// Package sqlite is the single-file storage backend used for development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
	"passvault/internal/domain/item"
	"passvault/internal/domain/otlink"
	"passvault/internal/domain/user"
	"passvault/internal/infrastructure/dsn"
)

type Storage struct {
	db *sql.DB

	users *UserRepository
	items *ItemRepository
	links *LinkRepository
	audit *AuditRepository
}

// New opens the database behind a sqlite3:// URI. Schema migrations are applied separately.
func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", dsn.SQLiteDataSource(databaseURI))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Storage{
		db:    db,
		users: NewUserRepository(db, log),
		items: NewItemRepository(db, log),
		links: NewLinkRepository(db, log),
		audit: NewAuditRepository(db, log),
	}, nil
}

func (s *Storage) Users() user.Repository { return s.users }
func (s *Storage) Items() item.Repository { return s.items }
func (s *Storage) Links() otlink.Repository { return s.links }
func (s *Storage) Audit() audit.Repository { return s.audit }

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func nullableNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func fromNullableNanos(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromNanos(n.Int64)
	return &t
}

// encodeJSON stores nil as NULL.
func encodeJSON(v any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
