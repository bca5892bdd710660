package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

// DriverName is reported by Store.Name.
const DriverName = "sqlite"

type Store struct {
	db   *sql.DB
	path string
}

var _ store.Store = (*Store)(nil)

// DSN builds a modernc.org/sqlite connection string for a database file with
// WAL, a busy timeout and foreign keys enabled. ":memory:" is passed through.
func DSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
}

// NewStore opens dsn. In-memory databases are pinned to a single connection
// since every new connection would otherwise see an empty database.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oops.Code("SQLITE_OPEN_FAILED").Wrap(err)
	}

	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, oops.Code("SQLITE_OPEN_FAILED").With("pragma", "foreign_keys").Wrap(err)
	}

	return &Store{db: db, path: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Name() string { return DriverName }

// Database is the file name without directory or query string.
func (s *Store) Database() string {
	p := strings.TrimPrefix(s.path, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return filepath.Base(p)
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{db: s.db} }
func (s *Store) Profiles() store.Profiles { return &profilesRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapUnique converts a UNIQUE constraint failure on accounts into the
// matching store sentinel.
func mapUnique(err error) error {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && se.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return err
	}

	msg := se.Error()
	switch {
	case strings.Contains(msg, "accounts.email"):
		return store.ErrDuplicateEmail
	case strings.Contains(msg, "accounts.username"):
		return store.ErrDuplicateUsername
	default:
		return store.ErrAlreadyExists
	}
}
