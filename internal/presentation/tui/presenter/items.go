// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	"github.com/tesso57/pullfeed/internal/presentation/tui/metrics"
	"github.com/tesso57/pullfeed/internal/presentation/tui/textutil"
)

const dateLayout = "Jan 02 15:04"

// Rows renders article rows for the list. Width is read on every call, so
// the owner updates it before resizing the list.
type Rows struct {
	Width     int
	FeedStyle lipgloss.Style
	DateStyle lipgloss.Style
}

// NewRows returns a renderer using color for feed names.
func NewRows(color string) *Rows {
	return &Rows{
		FeedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
		DateStyle: lipgloss.NewStyle().Faint(true),
	}
}

// Render renders one article as a single line: position, feed, title, date.
func (r *Rows) Render(item reading.Item, index int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%*d. ", metrics.ItemIndexWidth-2, index+1)
	if feed := textutil.SingleLine(item.FeedTitle); feed != "" {
		b.WriteString(r.FeedStyle.Render("[" + feed + "]"))
		b.WriteByte(' ')
	}
	b.WriteString(Title(item))
	if !item.Date.IsZero() {
		b.WriteString("  ")
		b.WriteString(r.DateStyle.Render(item.Date.Local().Format(dateLayout)))
	}
	if r.Width <= 0 {
		return b.String()
	}
	return textutil.Truncate(b.String(), r.Width)
}

// Title returns the item's display title, falling back to its link.
func Title(item reading.Item) string {
	if title := textutil.SingleLine(item.Title); title != "" {
		return title
	}
	if item.Link != "" {
		return item.Link
	}
	return "(untitled)"
}
