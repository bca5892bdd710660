package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

var (
	// Validation.
	ErrInvalidAccount  = errors.New("service: username, email and password are required")
	ErrInvalidLogin    = errors.New("service: email and password are required")
	ErrPasswordTooLong = errors.New("service: password exceeds 72 bytes")

	// Conflict.
	ErrEmailTaken    = errors.New("service: email already registered")
	ErrUsernameTaken = errors.New("service: username already taken")

	// Unauthorized.
	ErrInvalidCredentials = errors.New("service: invalid email or password")
	ErrAccountNotFound    = errors.New("service: account not found")

	// Soft not-found; callers answer with a normal response.
	ErrProfileNotFound = errors.New("service: profile not found")

	ErrStoreUnavailable = errors.New("service: store unavailable")
)

// storeErr classifies a store failure that has no domain meaning.
func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
