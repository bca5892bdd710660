package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Register pgx/v5 database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/postgres/migrations"
)

// ErrNoMigrationURL is returned by stores built with New, which have no
// connection string for golang-migrate to dial.
var ErrNoMigrationURL = errors.New("postgres: store has no connection url for migrations")

// MigrateURL rewrites postgres:// and postgresql:// URLs to the pgx5://
// scheme golang-migrate's pgx/v5 driver registers.
func MigrateURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "postgres://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(url, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	return url
}

func (s *Store) ApplyMigrations(ctx context.Context) error {
	if s.url == "" {
		return ErrNoMigrationURL
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return oops.Code("POSTGRES_MIGRATE_FAILED").With("step", "source").Wrap(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, MigrateURL(s.url))
	if err != nil {
		_ = source.Close()
		return oops.Code("POSTGRES_MIGRATE_FAILED").With("step", "init").Wrap(err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("POSTGRES_MIGRATE_FAILED").With("step", "up").Wrap(err)
	}
	return nil
}
