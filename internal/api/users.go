package api

import (
	"context"

	"github.com/adlens/adlens/internal/domain"
)

// ProfileUpdate is a partial update for /users/me. Nil fields are omitted
// so the backend leaves them unchanged. Password changes require both
// password fields.
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	Company         *string `json:"company,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.Get(ctx, "/users/me", nil, &user)
	return user, err
}

// UpdateProfile applies a partial profile update and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (domain.User, error) {
	var user domain.User
	err := c.Put(ctx, "/users/me", update, &user)
	return user, err
}
