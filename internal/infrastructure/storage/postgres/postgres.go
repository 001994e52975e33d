package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
	"passvault/internal/domain/item"
	"passvault/internal/domain/otlink"
	"passvault/internal/domain/user"
)

const uniqueViolation = "23505"

type Storage struct {
	pool *pgxpool.Pool

	users *UserRepository
	items *ItemRepository
	links *LinkRepository
	audit *AuditRepository
}

// New connects to databaseURI. Schema migrations are applied separately.
func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{
		pool:  pool,
		users: NewUserRepository(pool, log),
		items: NewItemRepository(pool, log),
		links: NewLinkRepository(pool, log),
		audit: NewAuditRepository(pool, log),
	}, nil
}

func (s *Storage) Users() user.Repository { return s.users }
func (s *Storage) Items() item.Repository { return s.items }
func (s *Storage) Links() otlink.Repository { return s.links }
func (s *Storage) Audit() audit.Repository { return s.audit }

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
