package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	"github.com/tesso57/pullfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/pullfeed/internal/presentation/tui/pulllist"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session Session
	List    *pulllist.Model[reading.Item]
	Rows    *presenter.Rows
	Help    help.Model
	Keys    KeyMap
	Width   int
	Height  int
	Feeds   []string

	Status      string
	StatusIsErr bool
	// StatusSeq increases on every status change so stale expiry timers
	// can be ignored.
	StatusSeq int
}

// SetStatus replaces the status line.
func (s *ModelState) SetStatus(text string, isErr bool) {
	s.Status = text
	s.StatusIsErr = isErr
	s.StatusSeq++
}

// ClearStatus clears the status line if seq is still current.
func (s *ModelState) ClearStatus(seq int) {
	if seq != s.StatusSeq {
		return
	}
	s.Status = ""
	s.StatusIsErr = false
}
