package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/logger"
	"github.com/haikegani/QuitSmoke/internal/status"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dashboard.SetWidth(msg.Width)
		m.history.SetSize(msg.Width-4, msg.Height-6)
	}

	if m.state == constants.StateEditPlan {
		return m.updatePlanForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.message = ""
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.message = ""
	case key.Matches(keyMsg, m.keys.Refresh):
		m.refresh()
	case key.Matches(keyMsg, m.keys.Puff) && m.state == constants.StateDashboard:
		m.logPuff()
	case key.Matches(keyMsg, m.keys.Edit) && m.state == constants.StateDashboard:
		cmd := m.openPlanForm()
		return m, cmd
	case m.state == constants.StateHistory:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) logPuff() {
	snap, err := m.tracker.LogPuff(m.userID)
	switch {
	case errors.Is(err, tracker.ErrLimitReached):
		m.message = err.Error()
	case err != nil:
		logger.Error("Failed to log puff", "error", err)
		m.message = "Failed to log puff: " + err.Error()
	default:
		m.message = status.Message(snap.Status)
	}
	m.refresh()
}

func (m *Model) openPlanForm() tea.Cmd {
	plan, err := m.tracker.Plan(m.userID)
	if err != nil {
		m.message = "Failed to load plan: " + err.Error()
		return nil
	}
	m.planForm = planFormFrom(plan)
	m.form = newPlanForm(m.planForm)
	m.formError = ""
	m.state = constants.StateEditPlan
	return m.form.Init()
}

func (m Model) updatePlanForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = constants.StateDashboard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.savePlanForm(); err != nil {
			// stay in the form so the user can correct it
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.message = "Plan updated"
		m.state = constants.StateDashboard
		m.refresh()
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateDashboard
	}
	return m, cmd
}

func (m *Model) savePlanForm() error {
	plan, err := m.tracker.Plan(m.userID)
	if err != nil {
		return err
	}
	updated, err := applyPlanForm(plan, *m.planForm)
	if err != nil {
		return err
	}
	return m.tracker.UpdatePlan(updated)
}
