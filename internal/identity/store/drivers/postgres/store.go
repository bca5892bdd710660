package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

const (
	DriverName = "postgres"

	constraintAccountsEmail    = "accounts_email_unique"
	constraintAccountsUsername = "accounts_username_unique"
)

// DB is the subset of *pgxpool.Pool the store uses. pgxmock.PgxPoolIface
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	db       DB
	database string

	// url is only needed by golang-migrate, which opens its own connection.
	url string
}

var _ store.Store = (*Store)(nil)

// New wraps an existing pool.
func New(db DB, database string) *Store {
	return &Store{db: db, database: database}
}

// NewStore opens a pgxpool for url and pings it.
func NewStore(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, oops.Code("POSTGRES_CONFIG_INVALID").Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("POSTGRES_CONNECT_FAILED").Wrap(mapUnavailable(err))
	}

	s := New(pool, cfg.ConnConfig.Database)
	s.url = url

	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, oops.Code("POSTGRES_CONNECT_FAILED").With("database", s.database).Wrap(err)
	}
	return s, nil
}

func (s *Store) Name() string     { return DriverName }
func (s *Store) Database() string { return s.database }

func (s *Store) Ping(ctx context.Context) error {
	return mapUnavailable(s.db.Ping(ctx))
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{db: s.db} }
func (s *Store) Profiles() store.Profiles { return &profilesRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapUnavailable(err)
}

// mapUnique turns unique_violation into the sentinel for the constraint hit.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return mapUnavailable(err)
	}
	switch pgErr.ConstraintName {
	case constraintAccountsEmail:
		return store.ErrDuplicateEmail
	case constraintAccountsUsername:
		return store.ErrDuplicateUsername
	default:
		return store.ErrAlreadyExists
	}
}

func mapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	if pgconn.Timeout(err) || errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}
