package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit        key.Binding
	Back        key.Binding
	Credentials key.Binding
	Activity    key.Binding
	Refresh     key.Binding
}

var Keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Credentials: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "credentials")),
	Activity:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activity")),
	Refresh:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload activity")),
}
