package service_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usermgmt/internal/identity/service"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store/drivers/sqlite"
)

func TestRegisterAuthenticateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAccounts(t, newStore(t))

	id, err := svc.Register(ctx, "t1", "t1@x.com", "Pw@123")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	acct, err := svc.Authenticate(ctx, "t1@x.com", "Pw@123")
	require.NoError(t, err)
	assert.Equal(t, id, acct.ID)
	assert.Equal(t, "t1", acct.Username)
	assert.NotEqual(t, "Pw@123", acct.PasswordHash)

	sess, err := svc.Login(ctx, "t1@x.com", "Pw@123")
	require.NoError(t, err)
	assert.Equal(t, "t1", sess.Account.Username)

	claims, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.True(t, claims.Expiry().Equal(sess.ExpiresAt))

	got, err := svc.GetAccount(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "t1@x.com", got.Email)
}

func TestRegisterTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccounts(t, newStore(t))

	_, err := svc.Register(ctx, "  alice ", " alice@example.com\t", "secret")
	require.NoError(t, err)

	acct, err := svc.Authenticate(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", acct.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAccounts(t, newStore(t))

	tests := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"missing username", "", "a@x.com", "pw", service.ErrInvalidAccount},
		{"blank username", "   ", "a@x.com", "pw", service.ErrInvalidAccount},
		{"missing email", "a", "", "pw", service.ErrInvalidAccount},
		{"missing password", "a", "a@x.com", "", service.ErrInvalidAccount},
		{"password too long", "a", "a@x.com", strings.Repeat("p", 73), service.ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccounts(t, newStore(t))

	_, err := svc.Register(ctx, "bob", "bob@example.com", "pw")
	require.NoError(t, err)

	// Email is checked before username.
	_, err = svc.Register(ctx, "bob", "bob@example.com", "pw")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = svc.Register(ctx, "someone-else", "bob@example.com", "pw")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = svc.Register(ctx, "bob", "other@example.com", "pw")
	require.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccounts(t, newStore(t))

	_, err := svc.Register(ctx, "carol", "carol@example.com", "right")
	require.NoError(t, err)

	_, unknown := svc.Authenticate(ctx, "nobody@example.com", "right")
	_, wrong := svc.Authenticate(ctx, "carol@example.com", "wrong")

	require.ErrorIs(t, unknown, service.ErrInvalidCredentials)
	require.ErrorIs(t, wrong, service.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())

	_, err = svc.Authenticate(ctx, "", "right")
	require.ErrorIs(t, err, service.ErrInvalidLogin)
	_, err = svc.Authenticate(ctx, "carol@example.com", "")
	require.ErrorIs(t, err, service.ErrInvalidLogin)
}

func TestGetAccountNotFound(t *testing.T) {
	svc, _ := newAccounts(t, newStore(t))

	_, err := svc.GetAccount(context.Background(), "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	require.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestAccountStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccounts(t, unavailableStore{})

	_, err := svc.Register(ctx, "dan", "dan@example.com", "pw")
	require.ErrorIs(t, err, service.ErrStoreUnavailable)

	_, err = svc.Authenticate(ctx, "dan@example.com", "pw")
	require.ErrorIs(t, err, service.ErrStoreUnavailable)

	_, err = svc.GetAccount(ctx, "x")
	require.ErrorIs(t, err, service.ErrStoreUnavailable)
}

func TestRegisterLostRaceIsConflict(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{"duplicate email", store.ErrDuplicateEmail, service.ErrEmailTaken},
		{"duplicate username", store.ErrDuplicateUsername, service.ErrUsernameTaken},
		{"unnamed duplicate", store.ErrAlreadyExists, service.ErrEmailTaken},
		{"wrapped duplicate username", fmt.Errorf("insert: %w", store.ErrDuplicateUsername), service.ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newAccounts(t, racingStore{createErr: tt.createErr})

			id, err := svc.Register(context.Background(), "t1", "t1@x.com", "Pw@123")
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, id)
			assert.NotErrorIs(t, err, service.ErrStoreUnavailable)
		})
	}
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "race.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	svc, _ := newAccounts(t, st)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		conflict int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), fmt.Sprintf("user%d", i), "same@x.com", "Pw@123")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, service.ErrEmailTaken):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflict)
}
