package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"passvault/internal/domain/audit"
	"passvault/internal/domain/item"
	"passvault/internal/domain/otlink"
	"passvault/internal/domain/user"
	"passvault/internal/infrastructure/dsn"
	"passvault/internal/infrastructure/storage/postgres"
	"passvault/internal/infrastructure/storage/sqlite"
)

// Storage is the persistent store shared by every request.
type Storage interface {
	Users() user.Repository
	Items() item.Repository
	Links() otlink.Repository
	Audit() audit.Repository

	Ping(ctx context.Context) error
	Close() error
}

// Open picks the backend from the scheme of databaseURI.
func Open(ctx context.Context, databaseURI string, log *slog.Logger) (Storage, error) {
	driver, err := dsn.DriverOf(databaseURI)
	if err != nil {
		return nil, err
	}

	log.Info("opening storage", "driver", driver)

	var s Storage
	switch driver {
	case dsn.Postgres:
		s, err = postgres.New(ctx, databaseURI, log)
	case dsn.SQLite:
		s, err = sqlite.New(ctx, databaseURI, log)
	default:
		err = fmt.Errorf("%w: %s", dsn.ErrUnsupportedScheme, driver)
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}
