package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrUnavailable   = errors.New("store: unavailable")

	// Uniqueness violations name the field that collided. Both match
	// ErrAlreadyExists under errors.Is.
	ErrDuplicateEmail    = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrAlreadyExists)
)

// Store is the root data access interface implemented by each driver
// (mongodb, sqlite, postgres). It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts
	Profiles() Profiles

	// ApplyMigrations brings the schema (tables or indexes) up to date. It is
	// idempotent.
	ApplyMigrations(ctx context.Context) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close() error

	// Name is the driver name, e.g. "mongodb".
	Name() string

	// Database is the logical database name reported by the health check.
	Database() string
}

type Accounts interface {
	// CreateAccount inserts a and returns the id assigned by the store.
	// Uniqueness violations return ErrDuplicateEmail or ErrDuplicateUsername.
	CreateAccount(ctx context.Context, a domain.Account) (string, error)

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)
}

type Profiles interface {
	// GetProfile returns ErrNotFound when the account has never saved one.
	GetProfile(ctx context.Context, userID string) (domain.Profile, error)

	// UpsertProfile creates or fully replaces the profile for p.UserID.
	UpsertProfile(ctx context.Context, p domain.Profile) error
}

// IsDuplicate reports whether err is a uniqueness violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
