// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usermgmt/internal/identity/domain"
	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

// Run exercises st. The store must be migrated and empty.
func Run(t *testing.T, st store.Store) {
	t.Helper()

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, st.Ping(context.Background()))
	})
	t.Run("MigrationsIdempotent", func(t *testing.T) {
		require.NoError(t, st.ApplyMigrations(context.Background()))
	})
	t.Run("Accounts", func(t *testing.T) { testAccounts(t, st) })
	t.Run("DuplicateAccounts", func(t *testing.T) { testDuplicates(t, st) })
	t.Run("ConcurrentRegistration", func(t *testing.T) { testConcurrentCreate(t, st) })
	t.Run("Profiles", func(t *testing.T) { testProfiles(t, st) })
}

func account(username, email string) domain.Account {
	return domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuuF0kNzr8q3H1c9QKMyVKj3bmrQm5lnS2",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func testAccounts(t *testing.T, st store.Store) {
	ctx := context.Background()
	accounts := st.Accounts()

	in := account("alice", "alice@example.com")
	id, err := accounts.CreateAccount(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byID, err := accounts.GetAccountByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, byID.ID)
	require.Equal(t, in.Username, byID.Username)
	require.Equal(t, in.Email, byID.Email)
	require.Equal(t, in.PasswordHash, byID.PasswordHash)
	require.WithinDuration(t, in.CreatedAt, byID.CreatedAt, time.Second)

	byEmail, err := accounts.GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)

	byUsername, err := accounts.GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byUsername.ID)

	_, err = accounts.GetAccountByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = accounts.GetAccountByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = accounts.GetAccountByID(ctx, "does-not-exist")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testDuplicates(t *testing.T, st store.Store) {
	ctx := context.Background()
	accounts := st.Accounts()

	_, err := accounts.CreateAccount(ctx, account("bob", "bob@example.com"))
	require.NoError(t, err)

	_, err = accounts.CreateAccount(ctx, account("bobby", "bob@example.com"))
	require.ErrorIs(t, err, store.ErrDuplicateEmail)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = accounts.CreateAccount(ctx, account("bob", "other-bob@example.com"))
	require.ErrorIs(t, err, store.ErrDuplicateUsername)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testConcurrentCreate(t *testing.T, st store.Store) {
	ctx := context.Background()
	accounts := st.Accounts()

	const n = 8
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := accounts.CreateAccount(ctx, account(fmt.Sprintf("racer%d", i), "race@example.com"))
			switch {
			case err == nil:
				created.Add(1)
			case store.IsDuplicate(err):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, created.Load())
	require.EqualValues(t, n-1, conflicts.Load())
}

func testProfiles(t *testing.T, st store.Store) {
	ctx := context.Background()

	id, err := st.Accounts().CreateAccount(ctx, account("carol", "carol@example.com"))
	require.NoError(t, err)

	profiles := st.Profiles()

	_, err = profiles.GetProfile(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)

	first := domain.Profile{
		UserID:        id,
		ProfileFields: domain.ProfileFields{Phone: "1", Bio: "y", City: "Perth"},
		UpdatedAt:     time.Now().UTC().Add(-time.Minute).Truncate(time.Millisecond),
	}
	require.NoError(t, profiles.UpsertProfile(ctx, first))

	got, err := profiles.GetProfile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.UserID)
	require.Equal(t, first.ProfileFields, got.ProfileFields)

	second := domain.Profile{
		UserID:        id,
		ProfileFields: domain.ProfileFields{Bio: "x"},
		UpdatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, profiles.UpsertProfile(ctx, second))

	got, err = profiles.GetProfile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.ProfileFields{Bio: "x"}, got.ProfileFields)
	require.WithinDuration(t, second.UpdatedAt, got.UpdatedAt, time.Second)
	require.True(t, got.UpdatedAt.After(first.UpdatedAt))
}
