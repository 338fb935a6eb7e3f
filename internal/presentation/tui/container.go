// Package tui provides the main user interface model and view components.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/pullfeed/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/pullfeed/internal/presentation/tui/components/main"
	"github.com/tesso57/pullfeed/internal/presentation/tui/components/modal"
	"github.com/tesso57/pullfeed/internal/presentation/tui/state"
	"github.com/tesso57/pullfeed/internal/presentation/tui/update"
	"github.com/tesso57/pullfeed/internal/presentation/tui/view"
)

const appTitle = "pullfeed"

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

func (m *Model) buildProps() view.Props {
	return view.Props{
		Header: m.buildHeaderProps(),
		Main:   m.buildMainProps(),
		Modal:  m.buildModalProps(),
		Footer: m.buildFooterProps(),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	return header.Props{
		Title:  appTitle,
		Feeds:  len(m.state.Feeds),
		Items:  len(m.state.List.State().List),
		Width:  m.state.Width,
		Accent: m.settings.Theme.Accent,
	}
}

func (m *Model) buildMainProps() mainview.Props {
	body := m.state.List.View()
	return mainview.Props{
		Width:  m.state.Width,
		Height: lipgloss.Height(body),
		Body:   body,
	}
}

func (m *Model) buildModalProps() modal.Props {
	switch {
	case m.state.Session == state.QuitView:
		return modal.Props{
			Visible: true,
			Kind:    modal.Quit,
			Body:    "Are you sure you want to quit?\n\n(y/n)",
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	case m.state.Help.ShowAll:
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    m.state.Help.FullHelpView(m.state.Keys.FullHelp()),
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	if m.state.StatusIsErr && m.state.Session == state.ListView {
		status := errorStyle.Render(m.state.Status)
		return state.FooterText(m.state.Session, status, state.FooterHelpText(m.state.Help, m.state.Keys))
	}
	return update.FooterView(m.state)
}
