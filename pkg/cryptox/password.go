package cryptox

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. Longer inputs are
// rejected rather than silently truncated.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword    = errors.New("cryptox: empty password")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// BcryptHasher is a Hasher with a configurable work factor. The zero value
// uses bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int

	dummyOnce sync.Once
	dummy     []byte
}

var _ Hasher = (*BcryptHasher)(nil)

func (h *BcryptHasher) cost() int {
	if h.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return h.Cost
}

// Hash returns a salted bcrypt hash of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", fmt.Errorf("cryptox: bcrypt: %w", err)
	}
	return string(out), nil
}

// Verify reports nil only if password produced encodedHash.
func (h *BcryptHasher) Verify(password, encodedHash string) error {
	return VerifyPassword(password, encodedHash)
}

// VerifyDummy burns one comparison against a throwaway hash at the same cost.
// Callers use it on unknown-account paths so response timing matches a real
// password check.
func (h *BcryptHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), h.cost())
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
func VerifyPassword(password, encodedHash string) error {
	if password == "" {
		return ErrPasswordMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: invalid hash: %w", err)
	}
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}
