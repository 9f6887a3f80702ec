package messages

import "github.com/fragmede/bridgetui/internal/actions"

// View transition messages.
type (
	OpenCredentialsMsg struct{}
	OpenActivityMsg    struct{}
	GoBackMsg          struct{}
)

// Data messages.
type (
	// ResultMsg delivers a finished action. Results arrive in the order
	// the calls resolve, not the order they were triggered.
	ResultMsg struct {
		Result actions.Result
	}

	CredentialsSavedMsg struct {
		Params actions.Params
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
