package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HMAC issues and verifies HS256 session tokens with a single shared secret.
// It is safe for concurrent use.
type HMAC struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*HMAC)

// WithClock overrides the time source used for exp on both sides.
func WithClock(now func() time.Time) Option {
	return func(h *HMAC) { h.now = now }
}

var (
	_ Issuer   = (*HMAC)(nil)
	_ Verifier = (*HMAC)(nil)
)

// NewHMAC returns an HS256 issuer/verifier. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewHMAC(secret []byte, ttl time.Duration, opts ...Option) (*HMAC, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	h := &HMAC{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	return h, nil
}

// TTL reports the configured token lifetime.
func (h *HMAC) TTL() time.Duration { return h.ttl }

// Issue signs {user_id, exp} for userID.
func (h *HMAC) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("jwtx: issue: %w", ErrMalformed)
	}

	claims := NewClaims(userID, h.ttl, h.now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, claims.Expiry(), nil
}

// Verify checks the signature first and then exp. Tokens signed with any
// algorithm other than HS256 are reported as ErrInvalidSig.
func (h *HMAC) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	_, err := h.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: missing user_id", ErrMalformed)
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
