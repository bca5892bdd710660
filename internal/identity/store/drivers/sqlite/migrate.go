package sqlite

import (
	"context"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/sqlite/migrations"
)

// ApplyMigrations applies any pending embedded migrations. golang-migrate has
// no context support, so ctx is only checked before starting.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return oops.Code("SQLITE_MIGRATE_FAILED").With("step", "driver").Wrap(err)
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return oops.Code("SQLITE_MIGRATE_FAILED").With("step", "source").Wrap(err)
	}

	instance, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return oops.Code("SQLITE_MIGRATE_FAILED").With("step", "instance").Wrap(err)
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.Code("SQLITE_MIGRATE_FAILED").With("step", "up").Wrap(err)
	}
	return nil
}
