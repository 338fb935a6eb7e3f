// Package pulllist provides a scrollable list component with pull-to-refresh
// and fetch-more pagination for Bubble Tea programs.
//
// The component reconciles three asynchronous operations (initial load,
// refresh, fetch-more) against touch-like drag events and scroll updates.
// All state changes go through Reduce; the gesture tracker decides when a
// drag commits a refresh; Present derives what to draw.
package pulllist

// Banner texts shown above the list.
const (
	PromptText   = "Pull down to refresh"
	CompleteText = "Refresh complete"
)

// Footer and placeholder texts.
const (
	DefaultEmptyText = "No data"
	LoadMoreText     = "Load more"
	EndText          = "You've reached the end"
)

const (
	// Threshold is the pull distance that commits a refresh.
	Threshold = 5
	// ArmedOffset is the sliding distance held while a refresh is in flight.
	ArmedOffset = Threshold + 30
)

// ViewState is the render-relevant state of a list.
type ViewState[T any] struct {
	InitLoading     bool
	MoreLoading     bool
	RefreshLoading  bool
	List            []T
	Index           int
	HasMore         bool
	SlidingDistance int
	RefreshText     string
}

// InitialState returns the state a list starts with before Init resolves.
func InitialState[T any]() ViewState[T] {
	return ViewState[T]{
		InitLoading: true,
		Index:       1,
		HasMore:     true,
		RefreshText: PromptText,
	}
}
