package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/bridgetui/internal/api"
	"github.com/fragmede/bridgetui/internal/testutil"
)

func TestSignInSendsCredentials(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodPost, api.SignInPath, http.StatusOK, `not json at all`)
	client := api.NewClient(srv.URL, time.Second)

	ctx := api.WithRequestID(context.Background(), "req-1")
	st, err := client.SignIn(ctx, api.Credentials{Username: "test2", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, st.StatusCode)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"username":"test2","password":"password"}`, reqs[0].Body)
	assert.Equal(t, "req-1", reqs[0].RequestID)
}

func TestSignInTermsOfUse(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodPost, api.SignInPath, http.StatusPreconditionFailed,
		`{"type":"TermsOfUseException","payload":"Terms not signed"}`)
	client := api.NewClient(srv.URL, time.Second)

	_, err := client.SignIn(context.Background(), api.Credentials{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.True(t, api.IsTermsOfUse(err))

	e, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPreconditionFailed, e.StatusCode)
	assert.Equal(t, "Terms not signed", e.Payload)
}

func TestSessionCookieCarriedAfterSignIn(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodGet, api.UserProfilePath, http.StatusOK, `{"emails":["a@x.com"],"firstName":"A"}`)
	client := api.NewClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := client.SignIn(ctx, api.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	profile, err := client.GetUserProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, profile.Emails)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "", reqs[0].Session)
	assert.Equal(t, "s3ss10n", reqs[1].Session)
}

func TestStatusEndpoints(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodGet, api.SignOutPath, http.StatusOK, `{"payload":"Signed out."}`)
	srv.Reply(http.MethodPost, api.ResetPasswordPath, http.StatusOK, `{"payload":"Email sent."}`)
	srv.Reply(http.MethodGet, api.BootstrapPath, http.StatusOK, `{"payload":"Bootstrapped."}`)
	client := api.NewClient(srv.URL, time.Second)
	ctx := context.Background()

	st, err := client.SignOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Signed out.", st.Payload)

	st, err = client.ResetPassword(ctx, "test2@example.org")
	require.NoError(t, err)
	assert.Equal(t, "Email sent.", st.Payload)

	st, err = client.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bootstrapped.", st.Payload)

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.JSONEq(t, `{"email":"test2@example.org"}`, reqs[1].Body)
	for _, r := range reqs {
		assert.NotEmpty(t, r.RequestID)
	}
}

func TestErrorBodies(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodGet, api.SignOutPath, http.StatusInternalServerError, `{"payload":"Boom"}`)
	srv.Reply(http.MethodGet, api.BootstrapPath, http.StatusBadGateway, `<html>bad gateway</html>`)
	client := api.NewClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := client.SignOut(ctx)
	e, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, e.StatusCode)
	assert.Equal(t, "Boom", e.Payload)
	assert.NoError(t, e.Err)
	assert.False(t, api.IsTermsOfUse(err))

	_, err = client.Bootstrap(ctx)
	e, ok = api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, e.StatusCode)
	assert.Empty(t, e.Payload)
	assert.Error(t, e.Err)
}

func TestMalformedSuccessBody(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.Reply(http.MethodGet, api.UserProfilePath, http.StatusOK, `{"emails":`)
	client := api.NewClient(srv.URL, time.Second)

	_, err := client.GetUserProfile(context.Background())
	e, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, e.StatusCode)
	assert.Empty(t, e.Payload)
}

func TestTransportError(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	url := srv.URL
	srv.Close()
	client := api.NewClient(url, time.Second)

	_, err := client.Bootstrap(context.Background())
	e, ok := api.AsError(err)
	require.True(t, ok)
	assert.Zero(t, e.StatusCode)
	assert.Empty(t, e.Payload)
	assert.Error(t, e.Err)
}

func TestTimeout(t *testing.T) {
	srv := testutil.NewBridgeServer(t)
	srv.ReplyWith(http.MethodGet, api.BootstrapPath, testutil.Reply{Status: http.StatusOK, Body: `{}`, Delay: 300 * time.Millisecond})
	client := api.NewClient(srv.URL, 50*time.Millisecond)

	_, err := client.Bootstrap(context.Background())
	e, ok := api.AsError(err)
	require.True(t, ok)
	assert.Zero(t, e.StatusCode)
}
