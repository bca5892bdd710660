package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/mongodb"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/postgres"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
)

const EnvProd = "prod"

type Config struct {
	Env                 string        `koanf:"env"`                   // dev, staging, prod (default: dev)
	Port                int           `koanf:"port"`                  // HTTP port (default: 8000)
	ShutdownGracePeriod time.Duration `koanf:"shutdown_grace_period"` // default: 10s
	Log                 LogConfig     `koanf:"log"`

	SecretKey  string        `koanf:"secret_key"`  // HS256 signing secret; required in prod
	TokenTTL   time.Duration `koanf:"token_ttl"`   // default: 24h
	BcryptCost int           `koanf:"bcrypt_cost"` // default: 10

	Store    StoreConfig    `koanf:"store"`
	Mongo    MongoConfig    `koanf:"mongo"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	CORS     CORSConfig     `koanf:"cors"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error (default: info)
	Format string `koanf:"format"` // json, text (default: json)
}

type StoreConfig struct {
	Driver         string        `koanf:"driver"`          // mongodb, sqlite, postgres (default: mongodb)
	Timeout        time.Duration `koanf:"timeout"`         // per store call (default: 30s)
	ConnectTimeout time.Duration `koanf:"connect_timeout"` // per connect attempt (default: 30s)
	ConnectRetries int           `koanf:"connect_retries"` // default: 5
}

type MongoConfig struct {
	URI                         string `koanf:"uri"`
	Database                    string `koanf:"database"`
	TLS                         bool   `koanf:"tls"`
	TLSCAFile                   string `koanf:"tls_ca_file"`
	TLSAllowInvalidCertificates bool   `koanf:"tls_allow_invalid_certificates"`
}

type SQLiteConfig struct {
	File string `koanf:"file"`
}

type PostgresConfig struct {
	URL string `koanf:"url"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// envKeys maps environment variables onto config keys. The names predate
// the config file layout, so they are listed rather than derived.
var envKeys = map[string]string{
	"ENV":                   "env",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
	"PORT":                  "port",
	"SHUTDOWN_GRACE_PERIOD": "shutdown_grace_period",
	"SECRET_KEY":            "secret_key",
	"TOKEN_TTL":             "token_ttl",
	"BCRYPT_COST":           "bcrypt_cost",
	"STORE_DRIVER":          "store.driver",
	"STORE_TIMEOUT":         "store.timeout",
	"STORE_CONNECT_TIMEOUT": "store.connect_timeout",
	"STORE_CONNECT_RETRIES": "store.connect_retries",
	"MONGO_URI":             "mongo.uri",
	"MONGO_DB_NAME":         "mongo.database",
	"MONGO_TLS":             "mongo.tls",
	"MONGO_TLS_CA_FILE":     "mongo.tls_ca_file",
	"DATABASE_FILE":         "sqlite.file",
	"DATABASE_URL":          "postgres.url",
	"CORS_ALLOWED_ORIGINS":  "cors.allowed_origins",

	"MONGO_TLS_ALLOW_INVALID_CERTIFICATES": "mongo.tls_allow_invalid_certificates",
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"env":          "env",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"port":         "port",
	"store-driver": "store.driver",
}

func defaults() map[string]any {
	return map[string]any{
		"env":                   "dev",
		"log.level":             "info",
		"log.format":            "json",
		"port":                  8000,
		"shutdown_grace_period": 10 * time.Second,
		"token_ttl":             jwtx.DefaultTokenTTL,
		"bcrypt_cost":           bcrypt.DefaultCost,
		"store.driver":          mongodb.DriverName,
		"store.timeout":         30 * time.Second,
		"store.connect_timeout": 30 * time.Second,
		"store.connect_retries": 5,
		"mongo.database":        "user_management_db",
		"mongo.tls":             true,
		"sqlite.file":           "usermgmt.db",
		"cors.allowed_origins":  httpx.DefaultCORSConfig().AllowedOrigins,
	}
}

// RegisterFlags adds the flags LoadConfig understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("env", "dev", "environment (dev, staging, prod)")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "json", "log format (json, text)")
	fs.Int("port", 8000, "HTTP listen port")
	fs.String("store-driver", mongodb.DriverName, "store driver (mongodb, sqlite, postgres)")
}

// LoadConfig layers defaults, the optional YAML configFile, environment
// variables and explicitly set flags, later layers winning. flags may be nil.
func LoadConfig(flags *pflag.FlagSet, configFile string) (Config, error) {
	k := koanf.New(".")

	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").With("key", key).Wrap(err)
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("file", configFile).Wrap(err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(name, value string) (string, any) {
		key, ok := envKeys[name]
		if !ok || value == "" {
			return "", nil
		}
		if key == "cors.allowed_origins" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "env").Wrap(err)
	}

	if flags != nil {
		flagProvider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	return cfg, nil
}

// Validate reports the first setting that would stop the service from
// starting.
func (c Config) Validate() error {
	fail := func(key, format string, args ...any) error {
		return oops.Code("CONFIG_INVALID").With("key", key).Errorf(format, args...)
	}

	switch c.Store.Driver {
	case mongodb.DriverName:
		if c.Mongo.URI == "" {
			return fail("mongo.uri", "MONGO_URI is required for the mongodb driver")
		}
		if c.Mongo.Database == "" {
			return fail("mongo.database", "MONGO_DB_NAME must not be empty")
		}
		if c.Mongo.TLSCAFile != "" {
			if _, err := os.Stat(c.Mongo.TLSCAFile); err != nil {
				return fail("mongo.tls_ca_file", "tls ca file: %v", err)
			}
		}
	case sqlite.DriverName:
		if c.SQLite.File == "" {
			return fail("sqlite.file", "DATABASE_FILE is required for the sqlite driver")
		}
	case postgres.DriverName:
		if c.Postgres.URL == "" {
			return fail("postgres.url", "DATABASE_URL is required for the postgres driver")
		}
	default:
		return fail("store.driver", "unknown store driver %q", c.Store.Driver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fail("port", "port %d out of range", c.Port)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fail("bcrypt_cost", "bcrypt cost %d outside [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	for key, d := range map[string]time.Duration{
		"token_ttl":             c.TokenTTL,
		"store.timeout":         c.Store.Timeout,
		"store.connect_timeout": c.Store.ConnectTimeout,
		"shutdown_grace_period": c.ShutdownGracePeriod,
	} {
		if d <= 0 {
			return fail(key, "%s must be positive, got %s", key, d)
		}
	}
	if c.Store.ConnectRetries < 0 {
		return fail("store.connect_retries", "connect retries must not be negative")
	}
	return nil
}

// CORSConfig returns the HTTP CORS policy for the configured origins.
func (c Config) CORSConfig() httpx.CORSConfig {
	cors := httpx.DefaultCORSConfig()
	if len(c.CORS.AllowedOrigins) > 0 {
		cors.AllowedOrigins = c.CORS.AllowedOrigins
	}
	return cors
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
