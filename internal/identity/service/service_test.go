package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/usermgmt/pkg/cryptox"
	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newAccounts(t *testing.T, st store.Store) (*service.AccountService, *jwtx.HMAC) {
	t.Helper()
	tokens, err := jwtx.NewHMAC(testSecret, time.Hour)
	require.NoError(t, err)
	return &service.AccountService{
		Store:  st,
		Hasher: &cryptox.BcryptHasher{Cost: bcrypt.MinCost},
		Tokens: tokens,
	}, tokens
}

// unavailableStore fails every call the way a driver does when the backend
// cannot be reached.
type unavailableStore struct{}

func (unavailableStore) Accounts() store.Accounts { return unavailableStore{} }
func (unavailableStore) Profiles() store.Profiles { return unavailableStore{} }
func (unavailableStore) ApplyMigrations(context.Context) error { return store.ErrUnavailable }
func (unavailableStore) Ping(context.Context) error { return store.ErrUnavailable }
func (unavailableStore) Close() error { return nil }
func (unavailableStore) Name() string { return "down" }
func (unavailableStore) Database() string { return "down" }
func (unavailableStore) GetProfile(context.Context, string) (domain.Profile, error) {
	return domain.Profile{}, store.ErrUnavailable
}
func (unavailableStore) UpsertProfile(context.Context, domain.Profile) error {
	return store.ErrUnavailable
}
func (unavailableStore) CreateAccount(context.Context, domain.Account) (string, error) {
	return "", store.ErrUnavailable
}
func (unavailableStore) GetAccountByID(context.Context, string) (domain.Account, error) {
	return domain.Account{}, store.ErrUnavailable
}
func (unavailableStore) GetAccountByEmail(context.Context, string) (domain.Account, error) {
	return domain.Account{}, store.ErrUnavailable
}
func (unavailableStore) GetAccountByUsername(context.Context, string) (domain.Account, error) {
	return domain.Account{}, store.ErrUnavailable
}

// racingStore finds no existing account, then fails the insert with createErr,
// as when a concurrent signup commits between the checks and the insert.
type racingStore struct {
	unavailableStore
	createErr error
}

func (s racingStore) Accounts() store.Accounts { return s }

func (racingStore) GetAccountByEmail(context.Context, string) (domain.Account, error) {
	return domain.Account{}, store.ErrNotFound
}
func (racingStore) GetAccountByUsername(context.Context, string) (domain.Account, error) {
	return domain.Account{}, store.ErrNotFound
}
func (s racingStore) CreateAccount(context.Context, domain.Account) (string, error) {
	return "", s.createErr
}
