package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fragmede/bridgetui/internal/actions"
	"github.com/fragmede/bridgetui/internal/config"
	"github.com/fragmede/bridgetui/internal/history"
	"github.com/fragmede/bridgetui/internal/ui/activity"
	"github.com/fragmede/bridgetui/internal/ui/console"
	"github.com/fragmede/bridgetui/internal/ui/credentials"
	"github.com/fragmede/bridgetui/internal/ui/messages"
	"github.com/fragmede/bridgetui/internal/ui/statusbar"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewConsole ViewType = iota
	ViewCredentials
	ViewActivity
)

type recordedMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	// View state
	activeView    ViewType
	previousViews []ViewType

	// Child models
	console     console.Model
	credentials credentials.Model
	activity    activity.Model
	statusBar   statusbar.Model

	// Shared state
	cfg     config.Config
	history *history.DB
	log     zerolog.Logger

	// Dimensions
	width  int
	height int
}

// NewApp creates the root application model. Requests run under ctx.
// db may be nil, in which case results are not recorded.
func NewApp(ctx context.Context, cfg config.Config, client actions.Client, db *history.DB, log zerolog.Logger) *App {
	params := actions.Params{
		Username: cfg.Username,
		Password: cfg.Password,
		Email:    cfg.Email,
	}
	bar := statusbar.New(cfg.BaseURL)
	bar.SetUser(cfg.Username)

	return &App{
		activeView: ViewConsole,
		console:    console.New(ctx, client, params),
		activity:   activity.New(db, cfg.HistoryLimit),
		statusBar:  bar,
		cfg:        cfg,
		history:    db,
		log:        log,
	}
}

// ActiveView returns the view currently shown.
func (a *App) ActiveView() ViewType {
	return a.activeView
}

// Message is the console's current message.
func (a *App) Message() string {
	return a.console.Message()
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.console.SetSize(msg.Width, contentHeight)
		a.credentials.SetSize(msg.Width, contentHeight)
		a.activity.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		return a, nil

	case tea.KeyMsg:
		if a.activeView != ViewCredentials {
			switch {
			case msg.String() == "ctrl+c":
				return a, tea.Quit
			case key.Matches(msg, Keys.Quit):
				if a.activeView == ViewConsole {
					return a, tea.Quit
				}
				return a, a.goBack()
			case key.Matches(msg, Keys.Back):
				return a, a.goBack()
			case key.Matches(msg, Keys.Credentials):
				a.openCredentials()
				return a, nil
			case key.Matches(msg, Keys.Activity):
				a.openActivity()
				return a, nil
			case key.Matches(msg, Keys.Refresh):
				if a.activeView == ViewActivity {
					a.activity.Load()
				}
				return a, nil
			}
		} else {
			// Text input owns every other key.
			if msg.String() == "esc" {
				return a, a.goBack()
			}
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
		}

	// View transitions.
	case messages.OpenCredentialsMsg:
		a.openCredentials()
		return a, nil

	case messages.OpenActivityMsg:
		a.openActivity()
		return a, nil

	case messages.GoBackMsg:
		return a, a.goBack()

	// Results always go to the console, whichever view is showing.
	case messages.ResultMsg:
		r := msg.Result
		ev := a.log.Info()
		if r.Failed() {
			ev = a.log.Warn().Err(r.Err)
		}
		ev.Str("action", r.Action.String()).
			Uint64("seq", r.Seq).
			Str("request.id", r.RequestID).
			Int("status", r.StatusCode).
			Msg("Action resolved")

		a.console, _ = a.console.Update(msg)
		a.statusBar.SetResult(r)
		return a, a.record(r)

	case recordedMsg:
		if a.activeView == ViewActivity {
			a.activity.Load()
		}
		return a, nil

	case messages.CredentialsSavedMsg:
		a.console.SetParams(msg.Params)
		a.statusBar.SetUser(msg.Params.Username)
		a.statusBar.SetStatus("Credentials saved", false)
		return a, a.goBack()

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewConsole:
		a.console, cmd = a.console.Update(msg)
		cmds = append(cmds, cmd)
	case ViewCredentials:
		a.credentials, cmd = a.credentials.Update(msg)
		cmds = append(cmds, cmd)
	case ViewActivity:
		a.activity, cmd = a.activity.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewConsole:
		content = a.console.View()
	case ViewCredentials:
		content = a.credentials.View()
	case ViewActivity:
		content = a.activity.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) record(r actions.Result) tea.Cmd {
	db := a.history
	if db == nil {
		return nil
	}
	limit := a.cfg.HistoryLimit
	log := a.log
	return func() tea.Msg {
		if err := db.Record(r); err != nil {
			log.Error().Err(err).Msg("Unable to record result")
			return messages.StatusMsg{Text: "Activity log: " + err.Error(), IsError: true}
		}
		if err := db.Prune(limit); err != nil {
			log.Warn().Err(err).Msg("Unable to prune activity log")
		}
		return recordedMsg{}
	}
}

func (a *App) openCredentials() {
	a.pushView(ViewCredentials)
	a.credentials = credentials.New(a.console.Params())
	a.credentials.SetSize(a.width, a.height-1)
}

func (a *App) openActivity() {
	if a.activeView == ViewActivity {
		return
	}
	a.pushView(ViewActivity)
	a.activity.SetSize(a.width, a.height-1)
	a.activity.Load()
}

func (a *App) pushView(v ViewType) {
	a.previousViews = append(a.previousViews, a.activeView)
	a.activeView = v
}

func (a *App) goBack() tea.Cmd {
	if len(a.previousViews) > 0 {
		a.activeView = a.previousViews[len(a.previousViews)-1]
		a.previousViews = a.previousViews[:len(a.previousViews)-1]
	}
	return nil
}
