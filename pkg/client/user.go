package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// User fetches a user's profile by id.
func (c *Client) User(ctx context.Context, id int) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/users/"+strconv.Itoa(id), &u); err != nil {
		return nil, fmt.Errorf("client.User: %w", err)
	}
	return &u, nil
}

// UserConfiguration fetches a user's locale/currency preferences.
func (c *Client) UserConfiguration(ctx context.Context, id int) (*domain.UserConfiguration, error) {
	var cfg domain.UserConfiguration
	if err := c.get(ctx, "/users/"+strconv.Itoa(id)+"/config", &cfg); err != nil {
		return nil, fmt.Errorf("client.UserConfiguration: %w", err)
	}
	return &cfg, nil
}

// UpdateUser replaces the mutable profile fields of a user.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) error {
	if err := c.doRequest(ctx, "PUT", "/users/"+strconv.Itoa(u.ID), u, nil); err != nil {
		return fmt.Errorf("client.UpdateUser: %w", err)
	}
	return nil
}
