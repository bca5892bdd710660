package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usermgmt/pkg/errutil"
)

// clearEnv unsets every variable LoadConfig reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "mongodb", cfg.Store.Driver)
	assert.Equal(t, 30*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Store.ConnectTimeout)
	assert.Equal(t, 5, cfg.Store.ConnectRetries)
	assert.Equal(t, "user_management_db", cfg.Mongo.Database)
	assert.True(t, cfg.Mongo.TLS)
	assert.Equal(t, "usermgmt.db", cfg.SQLite.File)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoadConfigLayers(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "usermgmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
log:
  level: debug
store:
  driver: sqlite
  timeout: 5s
sqlite:
  file: from-file.db
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("MONGO_TLS", "false")
	t.Setenv("STORE_CONNECT_RETRIES", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--log-format=text"}))

	cfg, err := LoadConfig(flags, path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port, "env beats file")
	assert.Equal(t, "debug", cfg.Log.Level, "file beats defaults")
	assert.Equal(t, "text", cfg.Log.Format, "changed flag applies")
	assert.Equal(t, "dev", cfg.Env, "unchanged flag does not override")
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 2, cfg.Store.ConnectRetries)
	assert.Equal(t, "from-file.db", cfg.SQLite.File)
	assert.False(t, cfg.Mongo.TLS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSConfig().AllowedOrigins)
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--store-driver", "SQLite", "--port", "8081"}))

	cfg, err := LoadConfig(flags, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_LOAD_FAILED")
}

func TestConfigValidate(t *testing.T) {
	clearEnv(t)
	base, err := LoadConfig(nil, "")
	require.NoError(t, err)
	base.Mongo.URI = "mongodb://localhost:27017"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"valid mongodb", func(*Config) {}, ""},
		{"mongodb needs uri", func(c *Config) { c.Mongo.URI = "" }, "mongo.uri"},
		{"missing ca file", func(c *Config) { c.Mongo.TLSCAFile = "/nonexistent/ca.pem" }, "mongo.tls_ca_file"},
		{"valid sqlite", func(c *Config) { c.Store.Driver = "sqlite" }, ""},
		{"sqlite needs file", func(c *Config) { c.Store.Driver = "sqlite"; c.SQLite.File = "" }, "sqlite.file"},
		{"postgres needs url", func(c *Config) { c.Store.Driver = "postgres" }, "postgres.url"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, "store.driver"},
		{"bad port", func(c *Config) { c.Port = 0 }, "port"},
		{"bad bcrypt cost", func(c *Config) { c.BcryptCost = 99 }, "bcrypt_cost"},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, "token_ttl"},
		{"negative retries", func(c *Config) { c.Store.ConnectRetries = -1 }, "store.connect_retries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantKey == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
			errutil.AssertErrorContext(t, err, "key", tt.wantKey)
		})
	}
}
