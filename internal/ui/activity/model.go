package activity

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/bridgetui/internal/history"
	"github.com/fragmede/bridgetui/internal/render"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")).Bold(true).Padding(1, 0)
	entryStyle    = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#333333")).Padding(0, 1)
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")).Bold(true)
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
)

// Model lists recent results from the activity log.
type Model struct {
	entries     []history.Entry
	selectedIdx int
	limit       int
	db          *history.DB
	err         string
	width       int
	height      int
}

// New creates the view. limit caps how many entries Load reads.
func New(db *history.DB, limit int) Model {
	return Model{db: db, limit: limit}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Load refreshes the entries from the database.
func (m *Model) Load() {
	m.err = ""
	if m.db == nil {
		m.entries = nil
		return
	}
	entries, err := m.db.Recent(m.limit)
	if err != nil {
		m.err = err.Error()
	}
	m.entries = entries
	if m.selectedIdx >= len(m.entries) {
		m.selectedIdx = 0
	}
}

// Entries returns the loaded entries, newest first.
func (m Model) Entries() []history.Entry {
	return m.entries
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			if m.selectedIdx < len(m.entries)-1 {
				m.selectedIdx++
			}
		case "k", "up":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "g", "home":
			m.selectedIdx = 0
		case "G", "end":
			if len(m.entries) > 0 {
				m.selectedIdx = len(m.entries) - 1
			}
		}
	}
	return m, nil
}

// View renders the list.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Activity"))
	sb.WriteString("\n")

	if m.err != "" {
		sb.WriteString("\n  " + failedStyle.Render(m.err) + "\n")
		return sb.String()
	}
	if len(m.entries) == 0 {
		sb.WriteString("\n  No activity yet.\n")
		return sb.String()
	}

	previewWidth := m.width - 6
	if previewWidth < 20 {
		previewWidth = 80
	}

	for i, e := range m.entries {
		var line strings.Builder

		line.WriteString(actionStyle.Render(e.Action))
		line.WriteString(metaStyle.Render(fmt.Sprintf(" #%d %s", e.Seq, e.RecordedAt.Format("15:04:05"))))
		if e.StatusCode != 0 {
			line.WriteString(metaStyle.Render(fmt.Sprintf(" HTTP %d", e.StatusCode)))
		}
		if e.Failed {
			line.WriteString(" " + failedStyle.Render("failed"))
		}
		line.WriteString("\n")
		if e.Message != "" {
			line.WriteString("  " + previewStyle.Render(render.Line(e.Message, previewWidth)))
		} else if e.Error != "" {
			line.WriteString("  " + metaStyle.Render(render.Line(e.Error, previewWidth)))
		}

		entry := line.String()
		if i == m.selectedIdx {
			entry = selectedStyle.Render(entry)
		} else {
			entry = entryStyle.Render(entry)
		}
		sb.WriteString(entry + "\n")
	}

	return sb.String()
}
