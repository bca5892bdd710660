package domain

import "time"

// ProfileFields is the user-editable part of a profile. Every field is
// optional and defaults to the empty string.
type ProfileFields struct {
	FullName    string
	Phone       string
	DateOfBirth string
	Address     string
	City        string
	State       string
	ZipCode     string
	Country     string
	Bio         string
}

// Profile is the single profile record owned by an account.
type Profile struct {
	UserID string
	ProfileFields
	UpdatedAt time.Time
}
