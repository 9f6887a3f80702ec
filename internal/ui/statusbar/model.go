package statusbar

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/bridgetui/internal/actions"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	hostStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1E90FF")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("#555555")).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)

	failedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	host       string
	username   string
	last       string
	lastFailed bool
	statusText string
	statusErr  bool
}

// New creates a status bar for the server at host.
func New(host string) Model {
	return Model{host: host}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetUser sets the configured username.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetResult shows which request produced the current message.
func (m *Model) SetResult(r actions.Result) {
	m.last = fmt.Sprintf("%s #%d", r.Action, r.Seq)
	if r.StatusCode != 0 {
		m.last += fmt.Sprintf(" %d", r.StatusCode)
	}
	m.lastFailed = r.Failed()
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.statusErr = isError
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := hostStyle.Render(m.host)
	if m.last != "" {
		if m.lastFailed {
			left += failedStyle.Render(m.last)
		} else {
			left += okStyle.Render(m.last)
		}
	}

	var right string
	if m.statusText != "" {
		if m.statusErr {
			right += failedStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.username != "" {
		right += userStyle.Render(m.username)
	} else {
		right += statusTextStyle.Render("c:credentials")
	}
	right += statusTextStyle.Render("a:activity q:quit")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
