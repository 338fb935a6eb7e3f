// Package header provides the top bar component.
package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/pullfeed/internal/presentation/tui/textutil"
)

// Props defines the properties for the header component.
type Props struct {
	Title  string
	Feeds  int
	Items  int
	Width  int
	Accent string
}

// Render renders the header as a single line.
func Render(p Props) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Accent)).
		Render(p.Title)
	meta := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf(" · %s · %d loaded", plural(p.Feeds, "feed"), p.Items))
	line := title + meta
	if p.Width > 0 {
		line = textutil.Truncate(line, p.Width)
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
