package pulllist

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TouchStartMsg reports a finger (or pointer) going down at Y.
type TouchStartMsg struct{ Y int }

// TouchMoveMsg reports the pointer moving to Y while down.
type TouchMoveMsg struct{ Y int }

// TouchEndMsg reports the pointer lifting.
type TouchEndMsg struct{}

// ScrollMsg reports the list's scroll offset in rows.
type ScrollMsg struct{ Offset int }

// ScrollNearEndMsg reports that the viewport is close to the list's end.
type ScrollNearEndMsg struct{}

// LoadMoreMsg requests the next page explicitly.
type LoadMoreMsg struct{}

// RefreshMsg runs a refresh cycle as if the list had been pulled.
type RefreshMsg struct{}

type initDoneMsg[T any] struct {
	id    int
	items []T
	err   error
}

type refreshDoneMsg[T any] struct {
	id    int
	items []T
	err   error
}

type fetchMoreDoneMsg[T any] struct {
	id    int
	index int
	items []T
	err   error
}

type confirmExpiredMsg struct {
	id int
}

// Styles holds the list's lipgloss styles.
type Styles struct {
	Banner      lipgloss.Style
	Footer      lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the default list styles.
func DefaultStyles() Styles {
	subtle := lipgloss.Color("244")
	return Styles{
		Banner:      lipgloss.NewStyle().Foreground(subtle).Align(lipgloss.Center),
		Footer:      lipgloss.NewStyle().Foreground(subtle).Align(lipgloss.Center),
		Placeholder: lipgloss.NewStyle().Foreground(subtle).Faint(true).Align(lipgloss.Center),
	}
}

// Model is a pull-to-refresh list of T.
type Model[T any] struct {
	Styles Styles

	id        int
	opts      Options[T]
	state     ViewState[T]
	gesture   Gesture
	presented Presentation
	spinner   spinner.Model
	viewport  viewport.Model

	width      int
	height     int
	top        int
	footerLine int
	rowStarts  []int

	pressed bool
	pressY  int
	dragged bool
}

// New creates a list. Init, OnRefresh, OnFetchMore and RenderItem are
// required.
func New[T any](opts Options[T]) (*Model[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model[T]{
		Styles:     DefaultStyles(),
		id:         nextID(),
		opts:       opts.withDefaults(),
		state:      InitialState[T](),
		gesture:    NewGesture(),
		spinner:    s,
		viewport:   viewport.New(0, 0),
		footerLine: -1,
	}
	m.viewport.MouseWheelEnabled = false
	m.sync()
	return m, nil
}

// Init starts the initial load.
func (m *Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initCmd())
}

// Reload restarts the initial load, for hosts retrying after OnInitError.
func (m *Model[T]) Reload() tea.Cmd {
	m.state.InitLoading = true
	m.sync()
	return m.Init()
}

// Close resets the gesture tracker. Fetches already in flight still deliver
// their results.
func (m *Model[T]) Close() {
	m.gesture.Reset()
	m.pressed = false
	m.dragged = false
}

// Update handles host events and the results of the list's own commands.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prevOffset := m.viewport.YOffset
	cmd := m.handle(msg)
	m.sync()
	if m.viewport.YOffset != prevOffset {
		m.gesture.Scroll(m.viewport.YOffset)
	}
	return m, cmd
}

func (m *Model[T]) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case TouchStartMsg:
		m.gesture.Start(msg.Y)
	case TouchMoveMsg:
		return m.touchMove(msg.Y)
	case TouchEndMsg:
		m.touchEnd()
	case ScrollMsg:
		m.gesture.Scroll(msg.Offset)
	case ScrollNearEndMsg:
		return m.nearEnd()
	case LoadMoreMsg:
		return m.fetchMore()
	case RefreshMsg:
		if m.gesture.Trigger() == Arm {
			return m.startRefresh()
		}
	case initDoneMsg[T]:
		return m.handleInitDone(msg)
	case refreshDoneMsg[T]:
		return m.handleRefreshDone(msg)
	case fetchMoreDoneMsg[T]:
		m.handleFetchMoreDone(msg)
	case confirmExpiredMsg:
		if msg.id == m.id {
			m.dispatch(GestureReset{})
			m.gesture.Release()
		}
	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model[T]) dispatch(ev Event) {
	m.state = Reduce(m.state, ev)
}

func (m *Model[T]) loading() bool {
	return m.state.InitLoading || m.state.RefreshLoading || m.state.MoreLoading
}

func (m *Model[T]) initCmd() tea.Cmd {
	id, load := m.id, m.opts.Init
	return func() tea.Msg {
		items, err := load(context.Background())
		return initDoneMsg[T]{id: id, items: items, err: err}
	}
}

func (m *Model[T]) handleInitDone(msg initDoneMsg[T]) tea.Cmd {
	if msg.id != m.id {
		return nil
	}
	if msg.err != nil {
		m.opts.Logger.Error().Err(msg.err).Int("list", m.id).Msg("initial load failed")
		if m.opts.OnInitError != nil {
			m.opts.OnInitError(msg.err)
		}
		return nil
	}
	m.opts.Logger.Debug().Int("list", m.id).Int("count", len(msg.items)).Msg("initial load done")
	m.dispatch(InitDone[T]{Items: msg.items})
	return nil
}

func (m *Model[T]) touchMove(y int) tea.Cmd {
	switch m.gesture.Move(y) {
	case Preview:
		m.dispatch(GestureOffset{Distance: m.gesture.PullDelta()})
	case Arm:
		return m.startRefresh()
	}
	return nil
}

func (m *Model[T]) touchEnd() {
	if m.gesture.End() == SpringBack {
		m.dispatch(GestureOffset{Distance: 0})
	}
}

func (m *Model[T]) startRefresh() tea.Cmd {
	m.dispatch(GestureArmed{})
	m.dispatch(RefreshStart{})
	m.opts.Logger.Debug().Int("list", m.id).Msg("refresh started")

	id, refresh := m.id, m.opts.OnRefresh
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		items, err := refresh(context.Background())
		return refreshDoneMsg[T]{id: id, items: items, err: err}
	})
}

func (m *Model[T]) handleRefreshDone(msg refreshDoneMsg[T]) tea.Cmd {
	if msg.id != m.id {
		return nil
	}
	switch {
	case msg.err != nil:
		m.opts.Logger.Warn().Err(msg.err).Int("list", m.id).Msg("refresh failed")
		m.notifyFetchError(msg.err)
		m.dispatch(RefreshFailed{})
	case len(msg.items) == 0:
		m.opts.Logger.Debug().Int("list", m.id).Msg("refresh found nothing new")
		m.dispatch(RefreshEmpty{})
	default:
		m.opts.Logger.Debug().Int("list", m.id).Int("count", len(msg.items)).Msg("refresh replaced list")
		m.dispatch(RefreshSucceeded[T]{Items: msg.items})
	}
	m.dispatch(RefreshConfirmed{})

	id := m.id
	return tea.Tick(m.opts.ConfirmHold, func(time.Time) tea.Msg {
		return confirmExpiredMsg{id: id}
	})
}

func (m *Model[T]) nearEnd() tea.Cmd {
	if !*m.opts.AutoFetchMore {
		return nil
	}
	return m.fetchMore()
}

func (m *Model[T]) fetchMore() tea.Cmd {
	if !m.state.HasMore || m.state.MoreLoading || m.state.InitLoading {
		return nil
	}
	next := m.state.Index + 1
	m.dispatch(FetchMoreStart{})
	m.opts.Logger.Debug().Int("list", m.id).Int("index", next).Msg("fetch more started")

	id, fetch := m.id, m.opts.OnFetchMore
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		items, err := fetch(context.Background(), next)
		return fetchMoreDoneMsg[T]{id: id, index: next, items: items, err: err}
	})
}

func (m *Model[T]) handleFetchMoreDone(msg fetchMoreDoneMsg[T]) {
	if msg.id != m.id {
		return
	}
	log := m.opts.Logger.With().Int("list", m.id).Int("index", msg.index).Logger()
	switch {
	case msg.err != nil:
		log.Warn().Err(msg.err).Msg("fetch more failed")
		m.notifyFetchError(msg.err)
		m.dispatch(FetchMoreFailed{})
	case msg.items == nil:
		m.dispatch(FetchMoreSettled{})
	case len(msg.items) == 0:
		log.Debug().Msg("no more pages")
		m.dispatch(FetchMoreExhausted{})
	default:
		log.Debug().Int("count", len(msg.items)).Msg("page appended")
		m.dispatch(FetchMoreSucceeded[T]{Items: msg.items, NewIndex: msg.index})
	}
}

func (m *Model[T]) notifyFetchError(err error) {
	if m.opts.OnFetchError != nil {
		m.opts.OnFetchError(err)
	}
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.opts.KeyMap
	switch {
	case key.Matches(msg, keys.Up):
		return m.scrollTo(m.viewport.YOffset - 1)
	case key.Matches(msg, keys.Down):
		return m.scrollTo(m.viewport.YOffset + 1)
	case key.Matches(msg, keys.PageUp):
		return m.scrollTo(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, keys.PageDown):
		return m.scrollTo(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, keys.Top):
		return m.scrollTo(0)
	case key.Matches(msg, keys.Bottom):
		return m.scrollTo(m.viewport.TotalLineCount())
	case key.Matches(msg, keys.Refresh):
		if m.gesture.Trigger() == Arm {
			return m.startRefresh()
		}
	case key.Matches(msg, keys.LoadMore):
		return m.fetchMore()
	}
	return nil
}

const wheelRows = 3

func (m *Model[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	units := m.opts.RowUnits
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.scrollTo(m.viewport.YOffset - wheelRows)
	case msg.Button == tea.MouseButtonWheelDown:
		return m.scrollTo(m.viewport.YOffset + wheelRows)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y < m.top {
			return nil
		}
		m.pressed, m.dragged, m.pressY = true, false, msg.Y
		m.gesture.Start(msg.Y * units)
	case msg.Action == tea.MouseActionMotion && m.pressed:
		if msg.Y != m.pressY {
			m.dragged = true
		}
		return m.touchMove(msg.Y * units)
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		m.touchEnd()
		if !m.dragged && m.onFooter(msg.Y) {
			return m.fetchMore()
		}
	}
	return nil
}

// scrollTo moves the viewport and reports the new position to the gesture
// tracker, triggering fetch-more when the end is near.
func (m *Model[T]) scrollTo(offset int) tea.Cmd {
	m.viewport.SetYOffset(max(offset, 0))
	m.gesture.Scroll(m.viewport.YOffset)
	if m.nearBottom() {
		return m.nearEnd()
	}
	return nil
}

func (m *Model[T]) nearBottom() bool {
	below := m.viewport.TotalLineCount() - m.viewport.YOffset - m.viewport.Height
	return max(below, 0)*m.opts.RowUnits <= m.opts.FetchMoreThreshold
}

func (m *Model[T]) onFooter(y int) bool {
	if m.footerLine < 0 || m.presented.Footer != FooterLoadMore {
		return false
	}
	row := m.footerLine - m.viewport.YOffset
	if row < 0 || row >= m.viewport.Height {
		return false
	}
	return y == m.top+1+row
}

// sync re-derives the presentation and refreshes the viewport content.
func (m *Model[T]) sync() {
	p := Present(m.state, m.opts)
	m.presented = p

	lead := p.Offset / m.opts.RowUnits
	lines := make([]string, 0, len(p.Rows)+lead+1)
	for range lead {
		lines = append(lines, "")
	}
	m.rowStarts = m.rowStarts[:0]
	if p.Empty {
		lines = append(lines, m.Styles.Placeholder.Width(m.width).Render(p.Placeholder))
	} else {
		line := lead
		for _, row := range p.Rows {
			m.rowStarts = append(m.rowStarts, line)
			line += lipgloss.Height(row)
		}
		lines = append(lines, p.Rows...)
	}

	m.footerLine = -1
	if footer := m.footerView(p); footer != "" {
		body := strings.Join(lines, "\n")
		m.footerLine = lipgloss.Height(body)
		lines = append(lines, footer)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model[T]) footerView(p Presentation) string {
	switch p.Footer {
	case FooterLoading:
		return m.Styles.Footer.Width(m.width).Render(m.spinner.View())
	case FooterLoadMore, FooterEnd:
		return m.Styles.Footer.Width(m.width).Render(p.FooterText)
	default:
		return ""
	}
}

// ItemAt returns the item rendered on body line y, counted from the top of
// the content.
func (m *Model[T]) ItemAt(y int) (T, bool) {
	var zero T
	if len(m.rowStarts) == 0 || y < m.rowStarts[0] {
		return zero, false
	}
	i := sort.SearchInts(m.rowStarts, y+1) - 1
	if i >= len(m.state.List) || (m.footerLine >= 0 && y >= m.footerLine) {
		return zero, false
	}
	return m.state.List[i], true
}

// TopItem returns the first item visible in the viewport.
func (m *Model[T]) TopItem() (T, bool) {
	y := m.viewport.YOffset
	if len(m.rowStarts) > 0 {
		y = max(y, m.rowStarts[0])
	}
	return m.ItemAt(y)
}

// View renders the banner above the scrolling body.
func (m *Model[T]) View() string {
	banner := m.presented.BannerText
	if m.presented.BannerLoading {
		banner = m.spinner.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.Styles.Banner.Width(m.width).Render(banner),
		m.viewport.View(),
	)
}

// SetSize sets the list's width and height in cells, banner included.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-1, 0)
	m.sync()
}

// SetTop sets the screen row of the list's first line for mouse hit tests.
func (m *Model[T]) SetTop(y int) {
	m.top = y
}

// State returns a copy of the current view state.
func (m *Model[T]) State() ViewState[T] {
	return m.state
}

// Presentation returns the presentation derived at the last update.
func (m *Model[T]) Presentation() Presentation {
	return m.presented
}

// Gesture returns a copy of the gesture tracker.
func (m *Model[T]) Gesture() Gesture {
	return m.gesture
}

// KeyMap returns the list's keybindings.
func (m *Model[T]) KeyMap() KeyMap {
	return m.opts.KeyMap
}

// ID returns the list's unique id.
func (m *Model[T]) ID() int {
	return m.id
}

// ScrollOffset returns the first visible body row.
func (m *Model[T]) ScrollOffset() int {
	return m.viewport.YOffset
}
