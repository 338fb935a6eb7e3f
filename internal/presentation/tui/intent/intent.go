// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Confirm
	Cancel
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent. Keys the article list handles
// itself map to None.
func FromKeyMsg(msg tea.KeyMsg, session state.Session, keys state.KeyMap) Intent {
	if session == state.QuitView {
		switch {
		case key.Matches(msg, keys.Confirm):
			return Intent{Type: Confirm}
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit):
			return Intent{Type: Cancel}
		}
		return Intent{Type: None}
	}
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	default:
		return Intent{Type: None}
	}
}
