package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg.DB.DatabaseURI, cfg.DB.Migrations, nil).Up(); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		log.Info("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg.DB.DatabaseURI, cfg.DB.Migrations, nil).Down(); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.Info("migrations reverted")
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
