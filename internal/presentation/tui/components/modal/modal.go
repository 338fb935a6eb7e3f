// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Help shows the full key help.
	Help
	// Quit asks for quit confirmation.
	Quit
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
}

// Render renders the modal centered in Width x Height.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	borderColor := lipgloss.Color("63")
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)
	if p.Kind == Quit {
		borderColor = lipgloss.Color("205")
		style = style.Width(40).Align(lipgloss.Center)
	}
	content := style.BorderForeground(borderColor).Render(p.Body)

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, content)
}
