package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server"
	"passvault/internal/app/server/config"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if listenAddr != "" {
			cfg.Server.RunAddress = listenAddr
		}
		if cfg.UsesDefaultSecret() && cfg.Env != config.EnvLocal {
			log.Warn("SECRET_KEY is the built-in default; tokens can be forged", slog.String("env", cfg.Env))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("init server: %w", err)
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error("close storage", slog.String("error", err.Error()))
			}
		}()

		return app.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address, overrides RUN_ADDRESS")
}
