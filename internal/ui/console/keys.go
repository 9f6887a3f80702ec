package console

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/fragmede/bridgetui/internal/actions"
)

// KeyMap binds one key per action.
type KeyMap struct {
	SignIn         key.Binding
	SignOut        key.Binding
	ResetPassword  key.Binding
	GetUserProfile key.Binding
	Bootstrap      key.Binding
}

var Keys = KeyMap{
	SignIn:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign in")),
	SignOut:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
	ResetPassword:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset password")),
	GetUserProfile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
	Bootstrap:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bootstrap")),
}

func (k KeyMap) binding(a actions.Action) key.Binding {
	switch a {
	case actions.SignIn:
		return k.SignIn
	case actions.SignOut:
		return k.SignOut
	case actions.ResetPassword:
		return k.ResetPassword
	case actions.GetUserProfile:
		return k.GetUserProfile
	default:
		return k.Bootstrap
	}
}
