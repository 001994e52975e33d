package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api"
	"passvault/internal/app/server/api/http/middleware/proxy"
	"passvault/internal/app/server/config"
	"passvault/internal/app/server/crypto"
	"passvault/internal/domain/user"
	"passvault/internal/infrastructure/migration"
	"passvault/internal/infrastructure/storage"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

type App struct {
	config   *config.Config
	log      *slog.Logger
	storage  storage.Storage
	registry *prometheus.Registry
}

// New migrates the database when configured to and opens storage.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if _, err := proxy.ParsePrefixes(cfg.Server.TrustedProxies); err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("applying migrations")
		if err := migration.NewMigration(cfg.DB.DatabaseURI, cfg.DB.Migrations, nil).Up(); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	store, err := storage.Open(ctx, cfg.DB.DatabaseURI, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		config:   cfg,
		log:      log,
		storage:  store,
		registry: reg,
	}, nil
}

func (a *App) Handler() http.Handler {
	return api.New(a.config, a.storage, a.registry, a.log)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.config.Server.RunAddress,
		Handler:           a.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ProvisionUser creates an account on behalf of an administrator.
func (a *App) ProvisionUser(ctx context.Context, email, password string, createdBy *uuid.UUID) (*user.User, error) {
	svc := user.NewService(a.storage.Users(), crypto.NewPasswordHasher(), user.NewCredentialValidator(), a.log)
	return svc.Provision(ctx, email, password, createdBy)
}

func (a *App) Close() error {
	return a.storage.Close()
}
