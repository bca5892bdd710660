package cryptox

import (
	"crypto/rand"
	"fmt"
)

// SecretSize is the default signing secret length in bytes (256 bits).
const SecretSize = 32

// GenerateSecret returns size cryptographically random bytes.
func GenerateSecret(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate random secret: %w", err)
	}
	return buf, nil
}
