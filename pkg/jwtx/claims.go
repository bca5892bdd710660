package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Claims carried by a session token. Only user_id and exp are ever issued;
// the registered claims are embedded so the parser can validate exp.
type Claims struct {
	UserID string `json:"user_id"`

	jwt.RegisteredClaims
}

// NewClaims builds the claims for userID expiring at now+ttl.
func NewClaims(userID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Expiry returns the exp claim, or the zero time when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
