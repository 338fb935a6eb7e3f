// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// SingleLine collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate trims text to width cells with an ellipsis. ANSI styling is
// preserved and not counted.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, ellipsis)
}

// Fit flattens text onto one line and truncates it to width.
func Fit(text string, width int) string {
	return Truncate(SingleLine(text), width)
}
