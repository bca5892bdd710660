package usermgmtsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to a user management service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10s request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", "", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the caller's profile. A missing profile is not an error;
// the response's Profile is nil instead.
func (c *Client) GetProfile(ctx context.Context, token string) (*GetProfileResponse, error) {
	var out GetProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveProfile replaces the caller's profile with fields.
func (c *Client) SaveProfile(ctx context.Context, token string, fields ProfileFields) (*SaveProfileResponse, error) {
	var out SaveProfileResponse
	if err := c.do(ctx, http.MethodPost, "/api/profile", token, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Root(ctx context.Context) (*RootResponse, error) {
	var out RootResponse
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
