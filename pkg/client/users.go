package client

import (
	"context"
	"net/http"
	"net/url"
)

// User is a commenter. Compare Comment.User.ID with the current user's ID to
// know which comments may be edited.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetCurrentUser returns the user this client's session acts as
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.request(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user by id
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.request(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
