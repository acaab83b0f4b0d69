package api

import (
	"context"
	"net/http"
)

// UserInfo fetches the authenticated user's profile.
func (c *Client) UserInfo(ctx context.Context) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, "/auth/me", nil, nil)
}
