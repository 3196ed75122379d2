package client

import (
	"context"
	"fmt"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the payload for the signup endpoint. RepeatedPassword is
// re-checked server-side; the client-side match check is form validation only.
type SignUpRequest struct {
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeatedPassword"`
}

// ResetPasswordRequest is the payload for the password-reset endpoint.
type ResetPasswordRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	NewPassword      string `json:"newPassword"`
	RepeatedPassword string `json:"repeatedPassword"`
}

// Login exchanges credentials for a session. The caller is responsible for
// storing the returned session; this adapter performs no storage writes.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var s domain.Session
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &s); err != nil {
		return domain.Session{}, fmt.Errorf("client.Login: %w", err)
	}
	return s, nil
}

// SignUp registers a new user. No session is created; the caller navigates
// to sign-in on success.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	if err := c.post(ctx, "/auth/signup", req, nil); err != nil {
		return fmt.Errorf("client.SignUp: %w", err)
	}
	return nil
}

// ResetPassword replaces the user's password. No session change.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := c.post(ctx, "/auth/reset-password", req, nil); err != nil {
		return fmt.Errorf("client.ResetPassword: %w", err)
	}
	return nil
}
