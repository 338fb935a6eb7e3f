package pulllist

// FooterKind selects what the footer row shows.
type FooterKind int

const (
	FooterHidden FooterKind = iota
	FooterLoading
	FooterLoadMore
	FooterEnd
)

// Presentation is everything the view draws, derived from a ViewState.
type Presentation struct {
	BannerLoading bool
	BannerText    string
	Empty         bool
	Placeholder   string
	Rows          []string
	Footer        FooterKind
	FooterText    string
	Offset        int
}

// Present derives the presentation for s. It has no side effects.
func Present[T any](s ViewState[T], opts Options[T]) Presentation {
	p := Presentation{
		BannerLoading: s.InitLoading || s.RefreshLoading,
		Offset:        max(s.SlidingDistance, 0),
	}
	if !p.BannerLoading {
		p.BannerText = s.RefreshText
	}

	if len(s.List) == 0 {
		p.Empty = true
		p.Placeholder = placeholder(opts)
		p.Footer = FooterHidden
		return p
	}

	p.Rows = make([]string, len(s.List))
	for i, item := range s.List {
		p.Rows[i] = opts.RenderItem(item, i)
	}

	switch {
	case s.MoreLoading:
		p.Footer = FooterLoading
	case s.HasMore:
		p.Footer = FooterLoadMore
		p.FooterText = LoadMoreText
	default:
		p.Footer = FooterEnd
		p.FooterText = EndText
	}
	return p
}

func placeholder[T any](opts Options[T]) string {
	if opts.EmptyHolder != "" {
		return opts.EmptyHolder
	}
	if opts.EmptyText != "" {
		return opts.EmptyText
	}
	return DefaultEmptyText
}
