package console

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/api"
	"github.com/fragmede/bridgetui/internal/ui/messages"
)

type fakeClient struct {
	creds   api.Credentials
	email   string
	lastCtx context.Context
}

func (f *fakeClient) SignIn(_ context.Context, creds api.Credentials) (*api.Status, error) {
	f.creds = creds
	return &api.Status{StatusCode: 200}, nil
}

func (f *fakeClient) SignOut(context.Context) (*api.Status, error) {
	return nil, &api.Error{StatusCode: 500, Payload: "Sign out failed."}
}

func (f *fakeClient) ResetPassword(_ context.Context, email string) (*api.Status, error) {
	f.email = email
	return &api.Status{StatusCode: 200, Payload: "Email sent."}, nil
}

func (f *fakeClient) GetUserProfile(context.Context) (*api.UserProfile, error) {
	return &api.UserProfile{StatusCode: 200, Emails: []string{"a@x.com", "b@y.com"}}, nil
}

func (f *fakeClient) Bootstrap(ctx context.Context) (*api.Status, error) {
	f.lastCtx = ctx
	return &api.Status{StatusCode: 200, Payload: "Bootstrapped."}, nil
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press sends a key, runs the resulting command and feeds its result back.
func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	m, cmd := m.Update(keyMsg(r))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestInitialState(t *testing.T) {
	m := New(context.Background(), &fakeClient{}, actions.Params{})
	assert.Equal(t, "", m.Message())
	_, ok := m.Last()
	assert.False(t, ok)
}

func TestKeysTriggerActions(t *testing.T) {
	client := &fakeClient{}
	m := New(context.Background(), client, actions.Params{Username: "test2", Password: "password", Email: "test2@example.org"})

	m = press(t, m, 's')
	assert.Equal(t, actions.SignedInMessage, m.Message())
	assert.Equal(t, api.Credentials{Username: "test2", Password: "password"}, client.creds)

	m = press(t, m, 'p')
	assert.Equal(t, "a@x.com, b@y.com", m.Message())

	m = press(t, m, 'r')
	assert.Equal(t, "Email sent.", m.Message())
	assert.Equal(t, "test2@example.org", client.email)

	m = press(t, m, 'b')
	assert.Equal(t, "Bootstrapped.", m.Message())

	m = press(t, m, 'o')
	assert.Equal(t, "Sign out failed.", m.Message())
	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, actions.SignOut, last.Action)
	assert.Equal(t, uint64(5), last.Seq)
	assert.True(t, last.Failed())
}

func TestOtherKeysIgnored(t *testing.T) {
	m := New(context.Background(), &fakeClient{}, actions.Params{})
	m, cmd := m.Update(keyMsg('x'))
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.Message())
}

func TestLaterResolvingResultWins(t *testing.T) {
	m := New(context.Background(), &fakeClient{}, actions.Params{})
	signIn := m.Trigger(actions.SignIn)
	profile := m.Trigger(actions.GetUserProfile)

	first := signIn().(messages.ResultMsg)
	second := profile().(messages.ResultMsg)
	require.Equal(t, uint64(1), first.Result.Seq)
	require.Equal(t, uint64(2), second.Result.Seq)

	// The later-invoked call resolves first.
	m, _ = m.Update(second)
	m, _ = m.Update(first)

	assert.Equal(t, actions.SignedInMessage, m.Message())
	last, _ := m.Last()
	assert.Equal(t, uint64(1), last.Seq)
	assert.Equal(t, actions.SignIn, last.Action)
}

func TestSetParamsAppliesToLaterActions(t *testing.T) {
	client := &fakeClient{}
	m := New(context.Background(), client, actions.Params{Username: "old", Password: "old"})
	m.SetParams(actions.Params{Username: "new", Password: "pw"})
	press(t, m, 's')
	assert.Equal(t, "new", client.creds.Username)
	assert.Equal(t, "pw", m.Params().Password)
}

func TestViewShowsMessage(t *testing.T) {
	m := New(context.Background(), &fakeClient{}, actions.Params{})
	m.SetSize(80, 20)
	assert.Contains(t, m.View(), "No requests yet.")

	m = press(t, m, 'b')
	assert.Contains(t, m.View(), "Bootstrapped.")
	assert.Contains(t, m.View(), "sign in")
}

func TestRequestsUseModelContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeClient{}
	m := New(ctx, client, actions.Params{})
	press(t, m, 'b')
	require.NotNil(t, client.lastCtx)
	assert.ErrorIs(t, client.lastCtx.Err(), context.Canceled)
}

func TestViewShowsPayloadVerbatim(t *testing.T) {
	m := New(context.Background(), &fakeClient{}, actions.Params{})
	m.SetSize(80, 20)
	m, _ = m.Update(messages.ResultMsg{Result: actions.Result{
		Action:  actions.ResetPassword,
		Seq:     1,
		Message: "Account <bob@example.org> already exists.",
	}})
	assert.Contains(t, m.View(), "Account <bob@example.org> already exists.")
}
