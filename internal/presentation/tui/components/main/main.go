// Package mainview provides the main content area component.
package mainview

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Body   string
}

// Render renders the body clipped to exactly Height lines.
func Render(p Props) string {
	return lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		MaxHeight(p.Height).
		Render(p.Body)
}
