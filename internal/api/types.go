package api

import (
	"errors"
	"fmt"
)

// Endpoint paths relative to the server base URL.
const (
	SignInPath        = "/api/auth/signIn"
	SignOutPath       = "/api/auth/signOut"
	ResetPasswordPath = "/api/auth/resetPassword"
	UserProfilePath   = "/api/auth/getUserProfile"
	BootstrapPath     = "/bootstrap"
)

// TermsOfUseException is the error type the server returns from sign in
// when the account has not yet accepted the terms of use.
const TermsOfUseException = "TermsOfUseException"

// Credentials is the sign in request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// Status is the {payload} body most endpoints answer with.
type Status struct {
	StatusCode int    `json:"-"`
	Payload    string `json:"payload"`
}

// UserProfile keeps only the email addresses; other profile fields are
// ignored on decode.
type UserProfile struct {
	StatusCode int      `json:"-"`
	Emails     []string `json:"emails"`
}

// Error is returned for transport failures and non-2xx responses.
// Type and Payload come from the error body when it is JSON; Err holds
// the transport or decode failure, if any.
type Error struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Payload    string `json:"payload"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Type != "":
		return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Type, e.Payload)
	default:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Payload)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTermsOfUse reports whether err is the server's terms-of-use refusal.
func IsTermsOfUse(err error) bool {
	e, ok := AsError(err)
	return ok && e.Type == TermsOfUseException
}
