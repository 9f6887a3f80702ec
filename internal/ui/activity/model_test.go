package activity

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/history"
)

func TestLoadAndNavigate(t *testing.T) {
	db, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Record(actions.Result{Action: actions.SignIn, Seq: 1, RequestID: "a", StatusCode: 200, Message: actions.SignedInMessage}))
	require.NoError(t, db.Record(actions.Result{Action: actions.Bootstrap, Seq: 2, RequestID: "b", Err: errors.New("connection refused")}))

	m := New(db, 10)
	m.SetSize(100, 30)
	m.Load()
	require.Len(t, m.Entries(), 2)

	view := m.View()
	assert.Contains(t, view, "bootstrap")
	assert.Contains(t, view, "failed")
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, actions.SignedInMessage)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.selectedIdx)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.selectedIdx)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.selectedIdx)
}

func TestEmpty(t *testing.T) {
	m := New(nil, 10)
	m.Load()
	assert.Contains(t, m.View(), "No activity yet.")
}
