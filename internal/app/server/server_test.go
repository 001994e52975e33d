package server

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/app/server/config"
	"passvault/internal/domain/user"
	"passvault/internal/utils/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{AppName: "Aami API", Env: config.EnvLocal}
	cfg.DB.DatabaseURI = "sqlite3://" + filepath.Join(t.TempDir(), "server.db")
	cfg.DB.AutoMigrate = true
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.AccessTokenTTL = time.Minute
	cfg.Server.RateLimitRPS = 100
	cfg.Server.RateLimitBurst = 100
	return cfg
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestApp_ProvisionUser(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, testConfig(t), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	admin, err := app.ProvisionUser(ctx, "admin@example.com", "admin-pass-1", nil)
	require.NoError(t, err)
	assert.Nil(t, admin.CreatedBy)

	member, err := app.ProvisionUser(ctx, "member@example.com", "member-pass-1", &admin.ID)
	require.NoError(t, err)
	require.NotNil(t, member.CreatedBy)
	assert.Equal(t, admin.ID, *member.CreatedBy)

	missing := uuid.New()
	_, err = app.ProvisionUser(ctx, "ghost@example.com", "ghost-pass-1", &missing)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = app.ProvisionUser(ctx, "admin@example.com", "admin-pass-1", nil)
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestApp_RunAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RunAddress = freeAddr(t)

	app, err := New(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	url := "http://" + cfg.Server.RunAddress + "/api/v1/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_BadDatabaseURI(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.DatabaseURI = "mysql://localhost/vault"

	_, err := New(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}

func TestNew_BadTrustedProxy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "proxy.internal"}

	_, err := New(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "proxy.internal")
}
