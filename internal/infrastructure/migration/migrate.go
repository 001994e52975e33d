package migration

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and the file source.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"passvault/internal/infrastructure/dsn"
	"passvault/migrations"
)

const embeddedScheme = "embedded://"

// Migrator is the subset of migrate.Migrate the service drives.
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests inject a fake to stay off disk and database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	databaseURI string
	sourceDir   string
	engine      MigrationEngine
}

// NewMigration targets databaseURI. An empty sourceDir selects the migrations compiled
// into the binary; otherwise sourceDir must hold postgres/ and sqlite3/ subdirectories.
func NewMigration(databaseURI, sourceDir string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		databaseURI: databaseURI,
		sourceDir:   sourceDir,
		engine:      engine,
	}
}

// DefaultEngine understands file:// sources and the embedded:// pseudo-scheme.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	if dir, ok := strings.CutPrefix(sourceURL, embeddedScheme); ok {
		src, err := iofs.New(migrations.FS, dir)
		if err != nil {
			return nil, fmt.Errorf("open embedded migrations: %w", err)
		}
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
	return migrate.New(sourceURL, databaseURL)
}

func (mg *Migration) SourceURL() (string, error) {
	driver, err := dsn.DriverOf(mg.databaseURI)
	if err != nil {
		return "", err
	}

	if mg.sourceDir == "" {
		return embeddedScheme + string(driver), nil
	}
	return "file://" + path.Join(mg.sourceDir, string(driver)), nil
}

func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() })
}

// Down reverts every applied migration.
func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() })
}

func (mg *Migration) run(step func(Migrator) error) (err error) {
	sourceURL, err := mg.SourceURL()
	if err != nil {
		return err
	}

	m, err := mg.engine(sourceURL, mg.databaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
