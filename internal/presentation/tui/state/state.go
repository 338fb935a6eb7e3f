// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/pullfeed/internal/application/settings"
	"github.com/tesso57/pullfeed/internal/presentation/tui/pulllist"
)

// Session represents the current view state.
type Session int

const (
	ListView Session = iota
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	UpPage   key.Binding
	DownPage key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Refresh  key.Binding
	LoadMore key.Binding
	Open     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.LoadMore, k.Open, k.Quit}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.UpPage, k.DownPage},
		{k.Top, k.Bottom, k.Open},
		{k.Refresh, k.LoadMore, k.Help, k.Quit},
	}
}

// List returns the bindings the article list handles itself.
func (k *KeyMap) List() pulllist.KeyMap {
	return pulllist.KeyMap{
		Up:       k.Up,
		Down:     k.Down,
		PageUp:   k.UpPage,
		PageDown: k.DownPage,
		Top:      k.Top,
		Bottom:   k.Bottom,
		Refresh:  k.Refresh,
		LoadMore: k.LoadMore,
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:       binding(cfg.Up, "up"),
		Down:     binding(cfg.Down, "down"),
		UpPage:   binding(cfg.UpPage, "pgup"),
		DownPage: binding(cfg.DownPage, "pgdn"),
		Top:      binding(cfg.Top, "top"),
		Bottom:   binding(cfg.Bottom, "bottom"),
		Refresh:  binding(cfg.Refresh, "refresh"),
		LoadMore: binding(cfg.LoadMore, "load more"),
		Open:     binding(cfg.Open, "open"),
		Quit: key.NewBinding(
			key.WithKeys(append(splitKeys(cfg.Quit), "ctrl+c")...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

func binding(keys, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, help),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
