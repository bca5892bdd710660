//go:build e2e

package usermgmt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usermgmt/pkg/usermgmtsdk"
)

func TestHealthAndRoot(t *testing.T) {
	client := setupSQLiteService(t)

	health, err := client.Health(t.Context())
	require.NoError(t, err)
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, usermgmtsdk.StoreConnected, health.Mongodb)

	root, err := client.Root(t.Context())
	require.NoError(t, err)
	require.Equal(t, "online", root.Status)
	require.NotEmpty(t, root.Endpoints)
}

func TestProfileFlowSQLite(t *testing.T) {
	runProfileFlow(t, setupSQLiteService(t))
}

func TestProfileFlowMongo(t *testing.T) {
	runProfileFlow(t, setupMongoService(t))
}

func runProfileFlow(t *testing.T, client *usermgmtsdk.Client) {
	t.Helper()
	ctx := t.Context()

	token := signupAndLogin(t, client, "t1", "t1@x.com", "Pw@123")

	got, err := client.GetProfile(ctx, token)
	require.NoError(t, err)
	require.Nil(t, got.Profile)
	require.Equal(t, "No profile found", got.Message)
	require.Equal(t, "t1", got.Username)
	require.Equal(t, "t1@x.com", got.Email)

	_, err = client.SaveProfile(ctx, token, usermgmtsdk.ProfileFields{Phone: "1", Bio: "y"})
	require.NoError(t, err)

	saved, err := client.SaveProfile(ctx, token, usermgmtsdk.ProfileFields{Bio: "x"})
	require.NoError(t, err)
	require.Equal(t, "x", saved.Profile.Bio)
	require.Empty(t, saved.Profile.Phone)

	got, err = client.GetProfile(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.Equal(t, "x", got.Profile.Bio)
	require.Empty(t, got.Profile.Phone)

	_, err = client.Signup(ctx, usermgmtsdk.SignupRequest{Username: "t2", Email: "t1@x.com", Password: "Pw@123"})
	requireAPIError(t, err, usermgmtsdk.ErrEmailTaken)

	_, err = client.Signup(ctx, usermgmtsdk.SignupRequest{Username: "t1", Email: "t2@x.com", Password: "Pw@123"})
	requireAPIError(t, err, usermgmtsdk.ErrUsernameTaken)
}

func TestCredentialFailuresLookAlike(t *testing.T) {
	client := setupSQLiteService(t)
	ctx := t.Context()

	signupAndLogin(t, client, "t1", "t1@x.com", "Pw@123")

	_, err := client.Login(ctx, usermgmtsdk.LoginRequest{Email: "t1@x.com", Password: "wrong"})
	requireAPIError(t, err, usermgmtsdk.ErrInvalidCredentials)

	_, err = client.Login(ctx, usermgmtsdk.LoginRequest{Email: "nobody@x.com", Password: "Pw@123"})
	requireAPIError(t, err, usermgmtsdk.ErrInvalidCredentials)
}

func TestProfileRequiresToken(t *testing.T) {
	client := setupSQLiteService(t)
	ctx := t.Context()

	_, err := client.GetProfile(ctx, "")
	requireAPIError(t, err, usermgmtsdk.ErrTokenMissing)

	_, err = client.GetProfile(ctx, "not.a.jwt")
	requireAPIError(t, err, usermgmtsdk.ErrTokenInvalid)
}
