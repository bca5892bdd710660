package usermgmtsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
)

// APIError is a non-2xx response. The server writes it with WriteError and the
// client decodes it back from the body.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("usermgmt: %d: %s", e.StatusCode, e.Message)
}

// WriteError writes e as {"message": ...} with its status code.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, MessageResponse{Message: e.Message})
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

var (
	ErrInvalidBody = NewAPIError(http.StatusBadRequest, "Invalid request body!")

	ErrSignupFieldsRequired = NewAPIError(http.StatusBadRequest, "Email, username, and password are required!")
	ErrPasswordTooLong      = NewAPIError(http.StatusBadRequest, "Password must be at most 72 bytes!")
	ErrEmailTaken           = NewAPIError(http.StatusConflict, "Email already registered!")
	ErrUsernameTaken        = NewAPIError(http.StatusConflict, "Username already taken!")

	ErrLoginFieldsRequired = NewAPIError(http.StatusBadRequest, "Email and password are required!")
	ErrInvalidCredentials  = NewAPIError(http.StatusUnauthorized, "Invalid email or password!")

	ErrTokenMissing      = NewAPIError(http.StatusUnauthorized, "Token is missing!")
	ErrTokenExpired      = NewAPIError(http.StatusUnauthorized, "Token has expired!")
	ErrTokenSignature    = NewAPIError(http.StatusUnauthorized, "Invalid token signature!")
	ErrTokenInvalid      = NewAPIError(http.StatusUnauthorized, "Invalid token!")
	ErrTokenUserNotFound = NewAPIError(http.StatusUnauthorized, "User not found!")

	ErrServiceUnavailable = NewAPIError(http.StatusServiceUnavailable, "Service temporarily unavailable!")

	ErrSignupFailed       = NewAPIError(http.StatusInternalServerError, "Error during signup")
	ErrLoginFailed        = NewAPIError(http.StatusInternalServerError, "Error during login")
	ErrProfileFetchFailed = NewAPIError(http.StatusInternalServerError, "Error fetching profile")
	ErrProfileSaveFailed  = NewAPIError(http.StatusInternalServerError, "Error saving profile")
	ErrTokenCheckFailed   = NewAPIError(http.StatusInternalServerError, "Token verification failed")
)

// parseErrorResponse builds an *APIError from a non-2xx response body, falling
// back to the status text when the body has no message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var msg MessageResponse
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
