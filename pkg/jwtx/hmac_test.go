package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/usermgmt/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var secret = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewHMAC(t *testing.T) {
	_, err := jwtx.NewHMAC(nil, time.Hour)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)

	h, err := jwtx.NewHMAC(secret, 0)
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultTokenTTL, h.TTL())
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	h, err := jwtx.NewHMAC(secret, 24*time.Hour, jwtx.WithClock(fixedClock(now)))
	require.NoError(t, err)

	token, exp, err := h.Issue("acct-1")
	require.NoError(t, err)
	require.True(t, now.Add(24*time.Hour).Equal(exp))

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", claims.UserID)
	require.True(t, claims.Expiry().Equal(exp))
}

func TestIssuedPayloadShape(t *testing.T) {
	h, err := jwtx.NewHMAC(secret, time.Hour)
	require.NoError(t, err)

	token, _, err := h.Issue("acct-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	rawHeader, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	var header map[string]any
	require.NoError(t, json.Unmarshal(rawHeader, &header))
	require.Equal(t, "HS256", header["alg"])

	rawPayload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rawPayload, &payload))
	require.Len(t, payload, 2)
	require.Equal(t, "acct-1", payload["user_id"])
	require.Contains(t, payload, "exp")
}

func TestVerifyFailures(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := jwtx.NewHMAC(secret, time.Hour, jwtx.WithClock(fixedClock(now)))
	require.NoError(t, err)
	valid, _, err := issuer.Issue("acct-1")
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name     string
		verifier func(t *testing.T) *jwtx.HMAC
		token    string
		want     error
	}{
		{
			name: "expired",
			verifier: func(t *testing.T) *jwtx.HMAC {
				h, err := jwtx.NewHMAC(secret, time.Hour, jwtx.WithClock(fixedClock(now.Add(2*time.Hour))))
				require.NoError(t, err)
				return h
			},
			token: valid,
			want:  jwtx.ErrExpired,
		},
		{
			name: "foreign secret",
			verifier: func(t *testing.T) *jwtx.HMAC {
				h, err := jwtx.NewHMAC([]byte("another-secret-another-secret-xx"), time.Hour, jwtx.WithClock(fixedClock(now)))
				require.NoError(t, err)
				return h
			},
			token: valid,
			want:  jwtx.ErrInvalidSig,
		},
		{
			name:  "foreign secret and expired reports signature",
			token: sign(jwt.SigningMethodHS256, []byte("nope"), jwtx.NewClaims("acct-1", -time.Hour, now)),
			want:  jwtx.ErrInvalidSig,
		},
		{
			name:  "other hmac algorithm",
			token: sign(jwt.SigningMethodHS512, secret, jwtx.NewClaims("acct-1", time.Hour, now)),
			want:  jwtx.ErrInvalidSig,
		},
		{
			name:  "garbage",
			token: "not-a-jwt",
			want:  jwtx.ErrMalformed,
		},
		{
			name:  "empty",
			token: "",
			want:  jwtx.ErrMalformed,
		},
		{
			name:  "missing exp",
			token: sign(jwt.SigningMethodHS256, secret, jwtx.Claims{UserID: "acct-1"}),
			want:  jwtx.ErrMalformed,
		},
		{
			name:  "missing user_id",
			token: sign(jwt.SigningMethodHS256, secret, jwtx.NewClaims("", time.Hour, now)),
			want:  jwtx.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := issuer
			if tt.verifier != nil {
				v = tt.verifier(t)
			}
			_, err := v.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssueRequiresUserID(t *testing.T) {
	h, err := jwtx.NewHMAC(secret, time.Hour)
	require.NoError(t, err)
	_, _, err = h.Issue("")
	require.Error(t, err)
}
