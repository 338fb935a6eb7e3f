// Package layout provides the main layout component.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the layout component.
type Props struct {
	Header string
	Main   string
	Footer string
}

// Render stacks header, main and footer.
func Render(p Props) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Header, p.Main, p.Footer} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
