// Package console is the auth view-model: five actions, one message.
//
// Each action runs as its own command, so several can be in flight at
// once. Their results land in the order they resolve and the last one to
// arrive owns the message. Last reports which request that was.
package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/render"
	"github.com/fragmede/bridgetui/internal/ui/messages"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")).Bold(true).Padding(1, 0)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Padding(1, 2)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Model holds the display message and the request counter.
type Model struct {
	ctx     context.Context
	client  actions.Client
	params  actions.Params
	seq     uint64
	message string
	last    actions.Result
	hasLast bool
	width   int
	height  int
}

// New creates the view-model. Requests run under ctx, so cancelling it
// abandons calls still in flight. params supplies credentials and the
// reset email for every action triggered later.
func New(ctx context.Context, client actions.Client, params actions.Params) Model {
	return Model{
		ctx:    ctx,
		client: client,
		params: params,
	}
}

// SetParams replaces the request values used by later actions.
func (m *Model) SetParams(p actions.Params) {
	m.params = p
}

// Params returns the current request values.
func (m Model) Params() actions.Params {
	return m.params
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Message is the text of the most recently resolved result.
func (m Model) Message() string {
	return m.message
}

// Last returns the result that set the current message.
func (m Model) Last() (actions.Result, bool) {
	return m.last, m.hasLast
}

// Trigger starts action a and returns the command that performs it.
func (m *Model) Trigger(a actions.Action) tea.Cmd {
	m.seq++
	req := actions.Request{Action: a, Seq: m.seq, Params: m.params}
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return messages.ResultMsg{Result: actions.Perform(ctx, client, req)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, a := range actions.All() {
			if key.Matches(msg, Keys.binding(a)) {
				return m, m.Trigger(a)
			}
		}

	case messages.ResultMsg:
		m.message = msg.Result.Message
		m.last = msg.Result
		m.hasLast = true
	}
	return m, nil
}

// View renders the message and the action keys.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Bridge"))
	sb.WriteString("\n")

	width := m.width - 4
	if m.hasLast {
		sb.WriteString(messageStyle.Render(render.Text(m.message, width)))
	} else {
		sb.WriteString(messageStyle.Render(dimStyle.Render("No requests yet.")))
	}
	sb.WriteString("\n\n")

	var help []string
	for _, a := range actions.All() {
		h := Keys.binding(a).Help()
		help = append(help, keyStyle.Render(h.Key)+" "+helpStyle.Render(h.Desc))
	}
	sb.WriteString(strings.Join(help, helpStyle.Render("  ·  ")))

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, sb.String())
}
