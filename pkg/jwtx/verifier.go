package jwtx

import (
	"errors"
	"time"
)

// Issuer mints session tokens for an account id.
type Issuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrEmptySecret = errors.New("jwtx: empty signing secret")
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
)
