package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/tesso57/pullfeed/internal/application/settings"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	"github.com/tesso57/pullfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/pullfeed/internal/presentation/tui/pulllist"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
	"github.com/tesso57/pullfeed/internal/presentation/tui/update"
	"github.com/tesso57/pullfeed/internal/presentation/tui/view"
)

// Source supplies the article list.
type Source interface {
	Init(ctx context.Context) ([]reading.Item, error)
	Refresh(ctx context.Context) ([]reading.Item, error)
	FetchMore(ctx context.Context, index int) ([]reading.Item, error)
}

// Model represents the main application state.
type Model struct {
	settings   settings.Settings
	state      *state.ModelState
	logger     *zerolog.Logger
	statusTTL  time.Duration
	initFailed bool
}

// NewModel creates a new application model reading articles from source.
func NewModel(cfg settings.Settings, source Source, logger *zerolog.Logger) (*Model, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	st := &state.ModelState{
		Session: state.ListView,
		Rows:    presenter.NewRows(cfg.Theme.FeedName),
		Help:    help.New(),
		Keys:    state.NewKeyMap(cfg.KeyMap),
		Feeds:   append([]string(nil), cfg.Feeds...),
	}
	m := &Model{
		settings:  cfg,
		state:     st,
		logger:    logger,
		statusTTL: update.StatusTTL,
	}

	list, err := pulllist.New(pulllist.Options[reading.Item]{
		Init:               source.Init,
		OnRefresh:          source.Refresh,
		OnFetchMore:        source.FetchMore,
		RenderItem:         st.Rows.Render,
		OnFetchError:       func(err error) { update.HandleFetchError(st, err) },
		OnInitError:        m.handleInitError,
		EmptyText:          cfg.List.EmptyText,
		FetchMoreThreshold: cfg.List.FetchMoreThreshold,
		AutoFetchMore:      new(cfg.List.AutoFetchMore),
		RowUnits:           cfg.List.RowUnits,
		ConfirmHold:        cfg.List.ConfirmHold(),
		KeyMap:             st.Keys.List(),
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}
	st.List = list
	return m, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.state.List.Init()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.state.StatusSeq
	cmd := m.handle(msg)
	if m.state.StatusSeq != seq {
		update.UpdateListSizes(m.state)
		if m.state.Status != "" {
			cmd = tea.Batch(cmd, update.ExpireStatusCmd(m.state.StatusSeq, m.statusTTL))
		}
	}
	return m, cmd
}

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
		return nil
	case update.StatusExpiredMsg:
		m.state.ClearStatus(msg.Seq)
		update.UpdateListSizes(m.state)
		return nil
	case tea.KeyMsg:
		if cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps()); handled {
			return cmd
		}
		if m.initFailed && m.state.List.State().InitLoading && key.Matches(msg, m.state.Keys.Refresh) {
			return m.reload()
		}
	case tea.MouseMsg:
		if m.state.Session != state.ListView || m.state.Help.ShowAll {
			return nil
		}
	}

	_, cmd := m.state.List.Update(msg)
	return cmd
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Close stops gesture tracking on the article list.
func (m *Model) Close() {
	m.state.List.Close()
}

func (m *Model) handleInitError(err error) {
	m.initFailed = true
	update.HandleInitError(m.state, err)
}

func (m *Model) reload() tea.Cmd {
	m.initFailed = false
	m.state.SetStatus("Retrying...", false)
	m.logger.Info().Msg("retrying initial load")
	return m.state.List.Reload()
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		OpenBrowser: openBrowser,
		Logger:      m.logger,
	}
}
