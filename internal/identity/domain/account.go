package domain

import "time"

// Account is a registered identity. Username and Email are each unique across
// all accounts. PasswordHash is a bcrypt hash; the raw password is never kept.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
