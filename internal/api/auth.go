package api

import (
	"context"
	"net/http"
)

// SignIn posts the credentials. The response body of a successful sign in
// is not read.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (*Status, error) {
	code, err := c.do(ctx, http.MethodPost, SignInPath, creds, nil)
	if err != nil {
		return nil, err
	}
	return &Status{StatusCode: code}, nil
}

// SignOut ends the server session.
func (c *Client) SignOut(ctx context.Context) (*Status, error) {
	return c.status(ctx, http.MethodGet, SignOutPath, nil)
}

// ResetPassword asks the server to mail a reset link to email.
func (c *Client) ResetPassword(ctx context.Context, email string) (*Status, error) {
	return c.status(ctx, http.MethodPost, ResetPasswordPath, resetRequest{Email: email})
}

// GetUserProfile fetches the signed in user's profile.
func (c *Client) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	var p UserProfile
	code, err := c.do(ctx, http.MethodGet, UserProfilePath, nil, &p)
	if err != nil {
		return nil, err
	}
	p.StatusCode = code
	return &p, nil
}

// Bootstrap calls the server's bootstrap endpoint.
func (c *Client) Bootstrap(ctx context.Context) (*Status, error) {
	return c.status(ctx, http.MethodGet, BootstrapPath, nil)
}

func (c *Client) status(ctx context.Context, method, path string, body interface{}) (*Status, error) {
	var s Status
	code, err := c.do(ctx, method, path, body, &s)
	if err != nil {
		return nil, err
	}
	s.StatusCode = code
	return &s, nil
}
