package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/pullfeed/internal/application/settings"
	"github.com/tesso57/pullfeed/internal/domain/reading"
)

type stubSource struct {
	mock.Mock
}

func (s *stubSource) Init(_ context.Context) ([]reading.Item, error) {
	args := s.Called()
	items, _ := args.Get(0).([]reading.Item)
	return items, args.Error(1)
}

func (s *stubSource) Refresh(_ context.Context) ([]reading.Item, error) {
	args := s.Called()
	items, _ := args.Get(0).([]reading.Item)
	return items, args.Error(1)
}

func (s *stubSource) FetchMore(_ context.Context, index int) ([]reading.Item, error) {
	args := s.Called(index)
	items, _ := args.Get(0).([]reading.Item)
	return items, args.Error(1)
}

func testSettings() settings.Settings {
	return settings.Settings{
		Feeds: []string{"https://example.com/a.xml", "https://example.com/b.xml"},
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", UpPage: "ctrl+u", DownPage: "ctrl+d",
			Top: "g", Bottom: "G", Refresh: "r", LoadMore: "m",
			Open: "enter", Quit: "q",
		},
		Theme: settings.ThemeConfig{FeedName: "244", Accent: "205"},
		List: settings.ListConfig{
			PageSize:           20,
			FetchMoreThreshold: 100,
			AutoFetchMore:      true,
			RowUnits:           4,
			EmptyText:          "No articles yet",
			ConfirmHoldMS:      1,
		},
	}
}

func newTestModel(t *testing.T, src *stubSource) *Model {
	t.Helper()
	m, err := NewModel(testSettings(), src, nil)
	require.NoError(t, err)
	m.statusTTL = time.Millisecond
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// run executes cmd and returns the messages it produces, skipping spinner
// ticks.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds messages back into m until no more are produced.
func settle(m *Model, msgs []tea.Msg) {
	for len(msgs) > 0 {
		var next []tea.Msg
		for _, msg := range msgs {
			_, cmd := m.Update(msg)
			next = append(next, run(cmd)...)
		}
		msgs = next
	}
}

func press(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func articles(n int) []reading.Item {
	items := make([]reading.Item, n)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range items {
		items[i] = reading.Item{
			GUID:      "guid-" + string(rune('a'+i)),
			Title:     "Article " + string(rune('A'+i)),
			Link:      "https://example.com/" + string(rune('a'+i)),
			FeedTitle: "Example",
			Date:      base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return items
}
