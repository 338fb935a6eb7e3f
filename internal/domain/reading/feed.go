// Package reading defines core reading models.
package reading

import "time"

// Item represents a single feed entry.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Published   string
	Description string
	Date        time.Time
	FeedTitle   string
	FeedURL     string
}

// Key returns the identity used to deduplicate items across fetches.
// It falls back from GUID to Link to Title.
func (i Item) Key() string {
	switch {
	case i.GUID != "":
		return i.GUID
	case i.Link != "":
		return i.Link
	default:
		return i.Title
	}
}

// Feed represents a parsed RSS or Atom feed.
type Feed struct {
	Title string
	Items []Item
	URL   string
}
