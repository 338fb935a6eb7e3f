package pulllist

// Event is a state transition applied by Reduce.
type Event interface {
	event()
}

// InitDone carries the result of the initial load.
type InitDone[T any] struct {
	Items []T
}

// RefreshStart marks a refresh call as in flight.
type RefreshStart struct{}

// RefreshSucceeded replaces the list with a non-empty refresh result.
type RefreshSucceeded[T any] struct {
	Items []T
}

// RefreshEmpty ends a refresh that found nothing new.
type RefreshEmpty struct{}

// RefreshFailed ends a refresh whose callback returned an error.
type RefreshFailed struct{}

// RefreshConfirmed shows the completion banner.
type RefreshConfirmed struct{}

// FetchMoreStart marks a fetch-more call as in flight.
type FetchMoreStart struct{}

// FetchMoreSucceeded appends a page and advances the index.
type FetchMoreSucceeded[T any] struct {
	Items    []T
	NewIndex int
}

// FetchMoreExhausted records that the source has no further pages.
type FetchMoreExhausted struct{}

// FetchMoreSettled ends a fetch-more that returned no usable result.
type FetchMoreSettled struct{}

// FetchMoreFailed ends a fetch-more whose callback returned an error.
type FetchMoreFailed struct{}

// GestureOffset sets the rubber-band preview offset.
type GestureOffset struct {
	Distance int
}

// GestureArmed pins the offset while a refresh runs.
type GestureArmed struct{}

// GestureReset returns the banner and offset to rest.
type GestureReset struct{}

func (InitDone[T]) event()           {}
func (RefreshStart) event()          {}
func (RefreshSucceeded[T]) event()   {}
func (RefreshEmpty) event()          {}
func (RefreshFailed) event()         {}
func (RefreshConfirmed) event()      {}
func (FetchMoreStart) event()        {}
func (FetchMoreSucceeded[T]) event() {}
func (FetchMoreExhausted) event()    {}
func (FetchMoreSettled) event()      {}
func (FetchMoreFailed) event()       {}
func (GestureOffset) event()         {}
func (GestureArmed) event()          {}
func (GestureReset) event()          {}

// Reduce applies ev to s and returns the new state. Events carrying items of
// a different type than T leave the state unchanged.
func Reduce[T any](s ViewState[T], ev Event) ViewState[T] {
	switch e := ev.(type) {
	case InitDone[T]:
		s.InitLoading = false
		s.List = e.Items
	case RefreshStart:
		s.RefreshLoading = true
	case RefreshSucceeded[T]:
		s.InitLoading = false
		s.RefreshLoading = false
		s.List = e.Items
		s.Index = 1
		s.HasMore = true
	case RefreshEmpty, RefreshFailed:
		s.RefreshLoading = false
	case RefreshConfirmed:
		s.RefreshText = CompleteText
	case FetchMoreStart:
		s.MoreLoading = true
	case FetchMoreSucceeded[T]:
		s.MoreLoading = false
		s.List = appendItems(s.List, e.Items)
		s.Index = e.NewIndex
	case FetchMoreExhausted:
		s.MoreLoading = false
		s.HasMore = false
	case FetchMoreSettled, FetchMoreFailed:
		s.MoreLoading = false
	case GestureOffset:
		s.SlidingDistance = max(e.Distance, 0)
	case GestureArmed:
		s.SlidingDistance = ArmedOffset
	case GestureReset:
		s.RefreshText = PromptText
		s.SlidingDistance = 0
	}
	return s
}

func appendItems[T any](list, items []T) []T {
	out := make([]T, 0, len(list)+len(items))
	out = append(out, list...)
	return append(out, items...)
}
