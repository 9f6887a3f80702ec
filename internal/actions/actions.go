// Package actions maps the five auth API calls onto display messages.
//
// Every call resolves to a Result carrying the originating action, its
// sequence number and request ID, plus the text to show. Callers that run
// several actions at once use those to tell which request produced the
// message they display.
package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fragmede/bridgetui/internal/api"
)

// Action identifies one user-triggered call.
type Action int

const (
	SignIn Action = iota
	SignOut
	ResetPassword
	GetUserProfile
	Bootstrap
)

var names = [...]string{
	SignIn:         "signIn",
	SignOut:        "signOut",
	ResetPassword:  "resetPassword",
	GetUserProfile: "getUserProfile",
	Bootstrap:      "bootstrap",
}

// Fixed messages for sign in.
const (
	SignedInMessage   = "You are signed in."
	TermsOfUseMessage = "You must sign the terms of use. "
)

func (a Action) String() string {
	if a < 0 || int(a) >= len(names) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return names[a]
}

// All returns every action in menu order.
func All() []Action {
	return []Action{SignIn, SignOut, ResetPassword, GetUserProfile, Bootstrap}
}

// Parse accepts an action name in any case, e.g. "signIn" or "signin".
func Parse(name string) (Action, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Params are the caller-supplied request values.
type Params struct {
	Username string
	Password string
	Email    string
}

// Client is the subset of *api.Client the actions use.
type Client interface {
	SignIn(ctx context.Context, creds api.Credentials) (*api.Status, error)
	SignOut(ctx context.Context) (*api.Status, error)
	ResetPassword(ctx context.Context, email string) (*api.Status, error)
	GetUserProfile(ctx context.Context) (*api.UserProfile, error)
	Bootstrap(ctx context.Context) (*api.Status, error)
}

// Request is one invocation of an action.
type Request struct {
	Action Action
	Seq    uint64
	Params Params
}

// Result is the outcome of a Request. Err is nil on success and otherwise
// usually an *api.Error. StatusCode is zero when no response arrived.
type Result struct {
	Action     Action
	Seq        uint64
	RequestID  string
	StatusCode int
	Message    string
	Err        error
}

// Failed reports whether the call failed, even where the message reads
// the same as on success.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Perform runs req against c and maps the response to a message.
func Perform(ctx context.Context, c Client, req Request) Result {
	id := uuid.NewString()
	ctx = api.WithRequestID(ctx, id)
	r := Result{Action: req.Action, Seq: req.Seq, RequestID: id}

	switch req.Action {
	case SignIn:
		st, err := c.SignIn(ctx, api.Credentials{Username: req.Params.Username, Password: req.Params.Password})
		r.Err = err
		r.StatusCode = statusCode(st, err)
		switch {
		case err == nil:
			r.Message = SignedInMessage
		case api.IsTermsOfUse(err):
			r.Message = TermsOfUseMessage
		default:
			r.Message = errorPayload(err)
		}

	case SignOut:
		st, err := c.SignOut(ctx)
		r.applyStatus(st, err)

	case ResetPassword:
		st, err := c.ResetPassword(ctx, req.Params.Email)
		r.applyStatus(st, err)

	case GetUserProfile:
		p, err := c.GetUserProfile(ctx)
		r.Err = err
		if err != nil {
			r.StatusCode = statusCode(nil, err)
			r.Message = errorPayload(err)
		} else {
			r.StatusCode = p.StatusCode
			r.Message = strings.Join(p.Emails, ", ")
		}

	case Bootstrap:
		st, err := c.Bootstrap(ctx)
		r.applyStatus(st, err)

	default:
		r.Err = fmt.Errorf("unknown action %d", int(req.Action))
	}
	return r
}

// applyStatus handles the endpoints that answer {payload} either way.
// The payload is shown whether the call succeeded or failed; only Err
// tells the two apart. It is unclear whether the server relies on this or
// it hides real failures, so it is kept as is.
func (r *Result) applyStatus(st *api.Status, err error) {
	r.Err = err
	r.StatusCode = statusCode(st, err)
	if err != nil {
		r.Message = errorPayload(err)
		return
	}
	r.Message = st.Payload
}

// errorPayload is the server's payload text, or "" when the failure
// carried none.
func errorPayload(err error) string {
	if e, ok := api.AsError(err); ok {
		return e.Payload
	}
	return ""
}

func statusCode(st *api.Status, err error) int {
	if e, ok := api.AsError(err); ok {
		return e.StatusCode
	}
	if st != nil {
		return st.StatusCode
	}
	return 0
}
