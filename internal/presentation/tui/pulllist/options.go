package pulllist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog"
)

// ErrMissingCallback is returned by New when a required callback is nil.
var ErrMissingCallback = errors.New("pulllist: missing required callback")

const (
	defaultFetchMoreThreshold = 100
	defaultRowUnits           = 4
	defaultConfirmHold        = time.Second
)

// FetchFunc loads the initial page or a refreshed list.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// FetchMoreFunc loads the page with the given 1-based index. An empty
// non-nil result means there are no further pages; a nil result is ignored.
type FetchMoreFunc[T any] func(ctx context.Context, index int) ([]T, error)

// RenderFunc renders one item at its position in the list.
type RenderFunc[T any] func(item T, index int) string

// Options configures a list.
type Options[T any] struct {
	Init        FetchFunc[T]
	OnRefresh   FetchFunc[T]
	OnFetchMore FetchMoreFunc[T]
	RenderItem  RenderFunc[T]

	// OnFetchError is notified when a refresh or fetch-more fails.
	OnFetchError func(error)
	// OnInitError is notified when the initial load fails. The list keeps
	// its loading banner until Reload succeeds.
	OnInitError func(error)

	EmptyHolder string
	EmptyText   string

	// FetchMoreThreshold is the distance from the bottom, in pixel units,
	// at which scrolling triggers fetch-more.
	FetchMoreThreshold int
	// AutoFetchMore defaults to true. When false only an explicit load-more
	// tap fetches the next page.
	AutoFetchMore *bool
	// RowUnits is how many pixel units one terminal row represents.
	RowUnits int
	// ConfirmHold is how long the completion banner stays after a refresh.
	ConfirmHold time.Duration

	KeyMap KeyMap
	Logger *zerolog.Logger
}

func (o Options[T]) validate() error {
	switch {
	case o.Init == nil:
		return fmt.Errorf("%w: Init", ErrMissingCallback)
	case o.OnRefresh == nil:
		return fmt.Errorf("%w: OnRefresh", ErrMissingCallback)
	case o.OnFetchMore == nil:
		return fmt.Errorf("%w: OnFetchMore", ErrMissingCallback)
	case o.RenderItem == nil:
		return fmt.Errorf("%w: RenderItem", ErrMissingCallback)
	}
	return nil
}

func (o Options[T]) withDefaults() Options[T] {
	if o.FetchMoreThreshold <= 0 {
		o.FetchMoreThreshold = defaultFetchMoreThreshold
	}
	if o.AutoFetchMore == nil {
		o.AutoFetchMore = new(true)
	}
	if o.RowUnits <= 0 {
		o.RowUnits = defaultRowUnits
	}
	if o.ConfirmHold <= 0 {
		o.ConfirmHold = defaultConfirmHold
	}
	if o.KeyMap.empty() {
		o.KeyMap = DefaultKeyMap()
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// KeyMap defines the list's keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Refresh  key.Binding
	LoadMore key.Binding
}

// DefaultKeyMap returns vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "pgup")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "pgdn")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		LoadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	}
}

// ShortHelp returns the bindings shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.LoadMore, k.Up, k.Down}
}

// FullHelp returns all bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Refresh, k.LoadMore},
	}
}

func (k KeyMap) empty() bool {
	for _, b := range []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Refresh, k.LoadMore} {
		if len(b.Keys()) > 0 {
			return false
		}
	}
	return true
}
