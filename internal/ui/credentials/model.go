package credentials

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/ui/messages"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")).Bold(true).
			Padding(1, 0)
)

const (
	fieldUsername = iota
	fieldPassword
	fieldEmail
	fieldCount
)

var labels = [fieldCount]string{"Username:", "Password:", "Reset email:"}

// Model is the form that edits the request values.
type Model struct {
	inputs     [fieldCount]textinput.Model
	focusIndex int
	width      int
	height     int
}

// New creates a form prefilled with p.
func New(p actions.Params) Model {
	var m Model
	for i := range m.inputs {
		in := textinput.New()
		in.Width = 30
		m.inputs[i] = in
	}
	m.inputs[fieldUsername].Placeholder = "username"
	m.inputs[fieldUsername].SetValue(p.Username)
	m.inputs[fieldPassword].Placeholder = "password"
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].SetValue(p.Password)
	m.inputs[fieldEmail].Placeholder = "email"
	m.inputs[fieldEmail].SetValue(p.Email)
	m.inputs[fieldUsername].Focus()
	return m
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Model) focus(i int) {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = (i + fieldCount) % fieldCount
	m.inputs[m.focusIndex].Focus()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			m.focus(m.focusIndex + 1)
			return m, nil
		case "shift+tab", "up":
			m.focus(m.focusIndex - 1)
			return m, nil
		case "enter":
			p := actions.Params{
				Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
				Password: m.inputs[fieldPassword].Value(),
				Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
			}
			return m, func() tea.Msg {
				return messages.CredentialsSavedMsg{Params: p}
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Bridge credentials"))
	sb.WriteString("\n\n")
	for i, in := range m.inputs {
		sb.WriteString(labelStyle.Render(labels[i]))
		sb.WriteString("\n")
		sb.WriteString(in.View())
		sb.WriteString("\n\n")
	}

	sb.WriteString(focusedStyle.Render("Enter") + " to save, " + focusedStyle.Render("Esc") + " to cancel")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
