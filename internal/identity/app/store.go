package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/mongodb"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/postgres"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/sqlite"
)

const (
	connectBackoffBase = 500 * time.Millisecond
	connectBackoffCap  = 10 * time.Second
)

// OpenStore connects to the configured driver, retrying with exponential
// backoff up to Store.ConnectRetries times. Each attempt is bounded by
// Store.ConnectTimeout.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	backoff := retry.NewExponential(connectBackoffBase)
	backoff = retry.WithCappedDuration(connectBackoffCap, backoff)
	backoff = retry.WithMaxRetries(uint64(cfg.Store.ConnectRetries), backoff)

	var (
		st      store.Store
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		dialCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
		defer cancel()

		s, err := dialStore(dialCtx, cfg)
		if err != nil {
			logger.Warn("store connect failed",
				"driver", cfg.Store.Driver,
				"attempt", attempt,
				"err", err,
			)
			return retry.RetryableError(err)
		}
		st = s
		return nil
	})
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").
			With("driver", cfg.Store.Driver).
			With("attempts", attempt).
			Wrap(err)
	}

	logger.Info("store connected",
		"driver", st.Name(),
		"database", st.Database(),
		"attempts", attempt,
	)
	return st, nil
}

func dialStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case mongodb.DriverName:
		return mongodb.NewStore(ctx, mongodb.Config{
			URI:                         cfg.Mongo.URI,
			Database:                    cfg.Mongo.Database,
			TLS:                         cfg.Mongo.TLS,
			TLSCAFile:                   cfg.Mongo.TLSCAFile,
			TLSAllowInvalidCertificates: cfg.Mongo.TLSAllowInvalidCertificates,
			ConnectTimeout:              cfg.Store.ConnectTimeout,
			Timeout:                     cfg.Store.Timeout,
		})
	case sqlite.DriverName:
		s, err := sqlite.NewStore(sqlite.DSN(cfg.SQLite.File))
		if err != nil {
			return nil, err
		}
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case postgres.DriverName:
		return postgres.NewStore(ctx, cfg.Postgres.URL)
	default:
		return nil, oops.Code("CONFIG_INVALID").Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
