package update

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/pullfeed/internal/presentation/tui/metrics"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
)

// UpdateListSizes fits the article list between the header and the footer.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 || s.List == nil {
		return
	}
	if s.Rows != nil {
		s.Rows.Width = s.Width
	}
	s.List.SetTop(metrics.HeaderLines)
	s.List.SetSize(s.Width, listHeight(s))
}

func listHeight(s *state.ModelState) int {
	return clampMin(s.Height-metrics.HeaderLines-footerHeight(s), metrics.MinBodyLines)
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(FooterView(s))
}

// FooterView renders the status line and the compact help.
func FooterView(s *state.ModelState) string {
	return state.FooterText(s.Session, s.Status, state.FooterHelpText(s.Help, s.Keys))
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
