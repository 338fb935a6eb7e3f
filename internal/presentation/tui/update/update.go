// Package update holds UI update logic for the TUI.
package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/tesso57/pullfeed/internal/presentation/tui/intent"
	"github.com/tesso57/pullfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
)

// StatusTTL is how long a status message stays in the footer.
const StatusTTL = 5 * time.Second

// Deps groups external dependencies for updates.
type Deps struct {
	OpenBrowser func(string) error
	Logger      *zerolog.Logger
}

// StatusExpiredMsg clears the status line if it is still the one set with
// Seq.
type StatusExpiredMsg struct {
	Seq int
}

// ExpireStatusCmd schedules a StatusExpiredMsg for seq after ttl.
func ExpireStatusCmd(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// HandleKeyMsg handles application-level keys. It reports false for keys
// the article list should receive.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	in := intent.FromKeyMsg(msg, s.Session, s.Keys)
	switch in.Type {
	case intent.Quit:
		s.Help.ShowAll = false
		s.Session = state.QuitView
		return nil, true
	case intent.Confirm:
		return tea.Quit, true
	case intent.Cancel:
		s.Session = state.ListView
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}

	if s.Session == state.QuitView {
		return nil, true
	}
	if s.Help.ShowAll {
		if key.Matches(msg, s.Keys.Cancel) {
			s.Help.ShowAll = false
		}
		return nil, true
	}
	if in.Type == intent.Open {
		openTopItem(s, deps)
		return nil, true
	}
	return nil, false
}

// HandleWindowSize records the terminal size and resizes the list.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height
	UpdateListSizes(s)
}

// HandleFetchError shows a failed refresh or fetch-more in the footer.
func HandleFetchError(s *state.ModelState, err error) {
	s.SetStatus(fmt.Sprintf("Load failed: %v", err), true)
	UpdateListSizes(s)
}

// HandleInitError shows a failed initial load in the footer.
func HandleInitError(s *state.ModelState, err error) {
	s.SetStatus(fmt.Sprintf("Could not load articles: %v (press %s to retry)", err, s.Keys.Refresh.Help().Key), true)
	UpdateListSizes(s)
}

func openTopItem(s *state.ModelState, deps Deps) {
	item, ok := s.List.TopItem()
	if !ok || item.Link == "" {
		s.SetStatus("Nothing to open", false)
		return
	}
	if deps.OpenBrowser == nil {
		return
	}
	if err := deps.OpenBrowser(item.Link); err != nil {
		if deps.Logger != nil {
			deps.Logger.Warn().Err(err).Str("link", item.Link).Msg("open browser")
		}
		s.SetStatus(fmt.Sprintf("Could not open %s", item.Link), true)
		return
	}
	s.SetStatus("Opened "+presenter.Title(item), false)
}
