package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/config"
	"passvault/internal/utils/logger"
)

var (
	envFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "passvault",
	Short: "Password vault backend",
	Long: `passvault stores end-to-end encrypted vault items, one-time share links
and an audit trail. Clients encrypt everything before it reaches the server.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad(envFile)
	log = logger.New(cfg.Env)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvPath, "path to the .env file")

	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}
