package usermgmtsdk

import "time"

// MessageResponse is the body of every error response and of responses that
// carry nothing but a status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Signup / Login
// ============================================================================

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token to send on profile requests.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ============================================================================
// Profile
// ============================================================================

// ProfileFields is the editable part of a profile. Every field is optional;
// a save replaces all of them, so omitted fields become empty.
type ProfileFields struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
	Bio         string `json:"bio"`
}

type Profile struct {
	UserID string `json:"user_id"`
	ProfileFields
	UpdatedAt time.Time `json:"updated_at"`
}

// GetProfileResponse is returned by GET /api/profile. Profile is nil and
// Message is "No profile found" until the account saves one.
type GetProfileResponse struct {
	Message  string   `json:"message,omitempty"`
	Profile  *Profile `json:"profile,omitempty"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
}

type SaveProfileResponse struct {
	Message string  `json:"message"`
	Profile Profile `json:"profile"`
}

// ============================================================================
// System
// ============================================================================

const (
	StoreConnected    = "connected"
	StoreDisconnected = "disconnected"
)

// HealthResponse is returned by GET /api/health. Mongodb reports the live
// store ping result whichever driver is configured.
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Mongodb  string `json:"mongodb"`
	Database string `json:"database"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Mongodb   string   `json:"mongodb"`
	Endpoints []string `json:"endpoints"`
}
