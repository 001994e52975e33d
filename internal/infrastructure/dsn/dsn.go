// Package dsn maps DATABASE_URI values to a storage driver.
package dsn

import (
	"errors"
	"fmt"
	"strings"
)

type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite3"

	sqlitePrefix = "sqlite3://"
	// applied to every SQLite connection the service opens
	sqliteParams = "_foreign_keys=on&_busy_timeout=5000"
)

var ErrUnsupportedScheme = errors.New("unsupported database scheme")

func DriverOf(uri string) (Driver, error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return Postgres, nil
	case strings.HasPrefix(uri, sqlitePrefix):
		return SQLite, nil
	}

	scheme, _, found := strings.Cut(uri, "://")
	if !found {
		scheme = uri
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

// SQLiteDataSource turns sqlite3://<path>[?query] into a go-sqlite3 data source name.
func SQLiteDataSource(uri string) string {
	path := strings.TrimPrefix(uri, sqlitePrefix)
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}
	return path + "?" + sqliteParams
}
