package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/haikegani/QuitSmoke/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case constants.StateHistory:
		content = docStyle.Render(m.history.View())
	case constants.StateEditPlan:
		content = m.viewPlanForm()
	}

	parts := []string{m.viewTabs(), content}
	if m.message != "" && m.state != constants.StateEditPlan {
		parts = append(parts, messageStyle.Render(m.message))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "History"} {
		active := m.state == constants.SessionState(i) ||
			(m.state == constants.StateEditPlan && i == int(constants.StateDashboard))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewPlanForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}
