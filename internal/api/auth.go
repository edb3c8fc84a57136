package api

import (
	"context"

	"github.com/adlens/adlens/internal/domain"
)

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the details for /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RegisterResponse is the created account plus its initial token pair.
type RegisterResponse struct {
	User   domain.User      `json:"user"`
	Tokens domain.TokenPair `json:"tokens"`
}

// Login exchanges credentials for a token pair. The caller is responsible
// for persisting the pair; see session.Session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (domain.TokenPair, error) {
	var pair domain.TokenPair
	err := c.Post(ctx, "/auth/login", req, &pair)
	return pair, err
}

// Register creates an account and returns the user together with an
// initial token pair in one response.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.Post(ctx, "/auth/register", req, &resp)
	return resp, err
}

// Logout asks the backend to blacklist the refresh token. Local cleanup is
// the session's job and happens regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.Post(ctx, "/auth/logout", refreshRequest{RefreshToken: refreshToken}, nil)
}
