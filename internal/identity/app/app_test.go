package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/usermgmt/pkg/cryptox"
	"github.com/aussiebroadwan/usermgmt/pkg/errutil"
	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteConfig(t *testing.T) Config {
	t.Helper()
	clearEnv(t)
	cfg, err := LoadConfig(nil, "")
	require.NoError(t, err)
	cfg.Store.Driver = "sqlite"
	cfg.SQLite.File = filepath.Join(t.TempDir(), "usermgmt.db")
	cfg.BcryptCost = bcrypt.MinCost
	cfg.ShutdownGracePeriod = 2 * time.Second
	return cfg
}

func TestResolveSecret(t *testing.T) {
	logger := discardLogger()

	secret, err := ResolveSecret(Config{Env: "dev"}, logger)
	require.NoError(t, err)
	assert.Len(t, secret, cryptox.SecretSize)

	other, err := ResolveSecret(Config{Env: "dev"}, logger)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other, "ephemeral secrets are random")

	_, err = ResolveSecret(Config{Env: EnvProd}, logger)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")

	secret, err = ResolveSecret(Config{Env: EnvProd, SecretKey: "short"}, logger)
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), secret)
}

func TestOpenStoreGivesUp(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Driver = "postgres"
	cfg.Postgres.URL = "postgres://user@host:notaport/db"
	cfg.Store.ConnectRetries = 1

	_, err := OpenStore(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	// The driver's own code is the deepest in the chain.
	errutil.AssertErrorCode(t, err, "POSTGRES_CONFIG_INVALID")
	errutil.AssertErrorContext(t, err, "attempts", 2)
	errutil.AssertErrorContext(t, err, "driver", "postgres")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Env = EnvProd

	_, err := New(context.Background(), cfg, discardLogger())
	require.Error(t, err, "prod without SECRET_KEY must not start")

	cfg = sqliteConfig(t)
	cfg.Store.Driver = "mongodb"
	_, err = New(context.Background(), cfg, discardLogger())
	require.Error(t, err, "mongodb without MONGO_URI must not start")
}

func TestServeAndShutdown(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.SecretKey = "0123456789abcdef0123456789abcdef"

	application, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()

	client := usermgmtsdk.NewClient("http://" + ln.Addr().String())

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usermgmtsdk.StoreConnected, health.Mongodb)
	assert.Equal(t, "usermgmt.db", health.Database)

	_, err = client.Signup(context.Background(), usermgmtsdk.SignupRequest{
		Username: "t1", Email: "t1@x.com", Password: "Pw@123",
	})
	require.NoError(t, err)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestMigrate(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, Migrate(context.Background(), cfg, discardLogger()))
	require.NoError(t, Migrate(context.Background(), cfg, discardLogger()), "migrations are idempotent")
}
