package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/pullfeed/internal/application/settings"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	"github.com/tesso57/pullfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/pullfeed/internal/presentation/tui/pulllist"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestState(t *testing.T, items ...reading.Item) *state.ModelState {
	t.Helper()
	rows := presenter.NewRows("244")
	keys := state.NewKeyMap(settings.KeyMapConfig{
		Up: "k", Down: "j", UpPage: "ctrl+u", DownPage: "ctrl+d",
		Top: "g", Bottom: "G", Refresh: "r", LoadMore: "m",
		Open: "enter", Quit: "q",
	})
	list, err := pulllist.New(pulllist.Options[reading.Item]{
		Init: func(context.Context) ([]reading.Item, error) { return items, nil },
		OnRefresh: func(context.Context) ([]reading.Item, error) {
			return []reading.Item{}, nil
		},
		OnFetchMore: func(context.Context, int) ([]reading.Item, error) {
			return []reading.Item{}, nil
		},
		RenderItem:  rows.Render,
		ConfirmHold: time.Millisecond,
		KeyMap:      keys.List(),
	})
	require.NoError(t, err)

	s := &state.ModelState{
		Session: state.ListView,
		List:    list,
		Rows:    rows,
		Help:    help.New(),
		Keys:    keys,
	}
	HandleWindowSize(s, tea.WindowSizeMsg{Width: 80, Height: 20})

	batch, ok := list.Init()().(tea.BatchMsg)
	require.True(t, ok)
	for _, cmd := range batch {
		if msg := cmd(); msg != nil {
			if _, tick := msg.(spinner.TickMsg); !tick {
				list.Update(msg)
			}
		}
	}
	require.False(t, list.State().InitLoading)
	return s
}

func TestHandleKeyMsg_QuitDialog(t *testing.T) {
	s := newTestState(t)

	cmd, handled := HandleKeyMsg(s, runeKey('q'), Deps{})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, state.QuitView, s.Session)

	HandleKeyMsg(s, runeKey('n'), Deps{})
	assert.Equal(t, state.ListView, s.Session)

	HandleKeyMsg(s, runeKey('q'), Deps{})
	HandleKeyMsg(s, runeKey('q'), Deps{})
	assert.Equal(t, state.ListView, s.Session, "quit key cancels the dialog")

	HandleKeyMsg(s, runeKey('q'), Deps{})
	_, handled = HandleKeyMsg(s, runeKey('j'), Deps{})
	assert.True(t, handled, "dialog swallows other keys")
	assert.Equal(t, state.QuitView, s.Session)

	cmd, _ = HandleKeyMsg(s, runeKey('y'), Deps{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHandleKeyMsg_Help(t *testing.T) {
	s := newTestState(t)

	HandleKeyMsg(s, runeKey('?'), Deps{})
	assert.True(t, s.Help.ShowAll)

	_, handled := HandleKeyMsg(s, runeKey('j'), Deps{})
	assert.True(t, handled)
	assert.True(t, s.Help.ShowAll)

	HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEsc}, Deps{})
	assert.False(t, s.Help.ShowAll)

	HandleKeyMsg(s, runeKey('?'), Deps{})
	HandleKeyMsg(s, runeKey('q'), Deps{})
	assert.False(t, s.Help.ShowAll, "quit dialog replaces help")
	assert.Equal(t, state.QuitView, s.Session)
}

func TestHandleKeyMsg_ListKeysPassThrough(t *testing.T) {
	s := newTestState(t)

	for _, msg := range []tea.KeyMsg{runeKey('j'), runeKey('r'), runeKey('m'), runeKey('G')} {
		_, handled := HandleKeyMsg(s, msg, Deps{})
		assert.False(t, handled, msg.String())
	}
}

func TestHandleKeyMsg_OpenTopItem(t *testing.T) {
	items := []reading.Item{
		{Title: "First", Link: "https://example.com/1"},
		{Title: "Second", Link: "https://example.com/2"},
	}

	t.Run("opens link", func(t *testing.T) {
		s := newTestState(t, items...)
		var opened string
		deps := Deps{OpenBrowser: func(url string) error {
			opened = url
			return nil
		}}

		_, handled := HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)

		assert.True(t, handled)
		assert.Equal(t, "https://example.com/1", opened)
		assert.Equal(t, "Opened First", s.Status)
		assert.False(t, s.StatusIsErr)
	})

	t.Run("browser failure", func(t *testing.T) {
		s := newTestState(t, items...)
		deps := Deps{OpenBrowser: func(string) error { return errors.New("no display") }}

		HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)

		assert.Contains(t, s.Status, "https://example.com/1")
		assert.True(t, s.StatusIsErr)
	})

	t.Run("empty list", func(t *testing.T) {
		s := newTestState(t)
		deps := Deps{OpenBrowser: func(string) error {
			t.Fatal("browser should not open")
			return nil
		}}

		HandleKeyMsg(s, tea.KeyMsg{Type: tea.KeyEnter}, deps)

		assert.Equal(t, "Nothing to open", s.Status)
	})
}

func TestHandleFetchError_SetsStatus(t *testing.T) {
	s := newTestState(t)
	seq := s.StatusSeq

	HandleFetchError(s, errors.New("offline"))

	assert.Equal(t, "Load failed: offline", s.Status)
	assert.True(t, s.StatusIsErr)
	assert.Equal(t, seq+1, s.StatusSeq)

	s.ClearStatus(seq)
	assert.NotEmpty(t, s.Status, "stale expiry keeps the status")
	s.ClearStatus(s.StatusSeq)
	assert.Empty(t, s.Status)
}

func TestHandleInitError_MentionsRetryKey(t *testing.T) {
	s := newTestState(t)

	HandleInitError(s, errors.New("disk full"))

	assert.Contains(t, s.Status, "disk full")
	assert.Contains(t, s.Status, "press r to retry")
}

func TestExpireStatusCmd(t *testing.T) {
	cmd := ExpireStatusCmd(7, time.Millisecond)
	require.NotNil(t, cmd)
	assert.Equal(t, StatusExpiredMsg{Seq: 7}, cmd())
}

func TestUpdateListSizes(t *testing.T) {
	s := newTestState(t)

	want := s.Height - 1 - lipgloss.Height(FooterView(s))
	assert.Equal(t, want, lipgloss.Height(s.List.View()))
	assert.Equal(t, s.Width, s.Rows.Width)

	s.SetStatus("2 feeds timed out", true)
	UpdateListSizes(s)
	assert.Equal(t, want-1, lipgloss.Height(s.List.View()), "status line takes a row")
}

func TestUpdateListSizes_KeepsMinimumBody(t *testing.T) {
	s := newTestState(t)

	HandleWindowSize(s, tea.WindowSizeMsg{Width: 40, Height: 2})

	assert.Equal(t, 3, lipgloss.Height(s.List.View()))
}
