package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
)

// FooterText returns the footer content for the current session.
func FooterText(session Session, status, helpText string) string {
	if session == QuitView {
		return helpText
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}

// FooterHelpText renders the compact help line for keys.
func FooterHelpText(h help.Model, keys KeyMap) string {
	return h.ShortHelpView(keys.ShortHelp())
}
