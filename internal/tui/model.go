package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/logger"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/tracker"
	"github.com/haikegani/QuitSmoke/internal/tui/components/dashboard"
	"github.com/haikegani/QuitSmoke/internal/tui/components/history"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

// PlanFormModel holds the plan form's raw input.
type PlanFormModel struct {
	StartLimit string
	DailyStep  string
	MinLimit   string
	StartDate  string
}

type Model struct {
	tracker   *tracker.Service
	userID    string
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	dashboard dashboard.Model
	history   history.Model
	form      *huh.Form
	planForm  *PlanFormModel
	message   string
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(svc *tracker.Service, userID string) Model {
	m := Model{
		tracker:   svc,
		userID:    userID,
		state:     constants.StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(0),
		history:   history.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Puff, m.keys.Edit)
	case constants.StateHistory:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	actions := []key.Binding{m.keys.Puff, m.keys.Edit, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	return [][]key.Binding{global, actions, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads today's snapshot and the progress window from the store.
func (m *Model) refresh() {
	snap, err := m.tracker.Today(m.userID)
	if err != nil {
		logger.Error("Failed to load today's usage", "error", err)
		m.message = "Failed to load today: " + err.Error()
		return
	}
	m.dashboard.SetSnapshot(snap)

	settings, err := m.tracker.Settings()
	if err != nil {
		m.message = "Failed to load settings: " + err.Error()
		return
	}
	report, err := m.tracker.Progress(m.userID, settings.ChartWindowDays)
	if err != nil {
		m.message = "Failed to load progress: " + err.Error()
		return
	}
	m.history.SetReport(report)
}

func newPlanForm(f *PlanFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Starting daily limit").
				Value(&f.StartLimit).
				Validate(intAtLeast(1)),
			huh.NewInput().
				Title("Daily reduction").
				Description("How much the limit drops each day").
				Value(&f.DailyStep).
				Validate(intAtLeast(0)),
			huh.NewInput().
				Title("Minimum limit").
				Description("The limit never drops below this").
				Value(&f.MinLimit).
				Validate(intAtLeast(0)),
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD").
				Value(&f.StartDate).
				Validate(func(s string) error {
					_, err := utils.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func intAtLeast(floor int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if n < floor {
			return fmt.Errorf("must be at least %d", floor)
		}
		return nil
	}
}

func planFormFrom(plan models.QuitPlan) *PlanFormModel {
	return &PlanFormModel{
		StartLimit: strconv.Itoa(plan.StartLimit),
		DailyStep:  strconv.Itoa(plan.DailyStep),
		MinLimit:   strconv.Itoa(plan.MinLimit),
		StartDate:  plan.StartDate.String(),
	}
}

// applyPlanForm returns plan with the form's values applied.
func applyPlanForm(plan models.QuitPlan, f PlanFormModel) (models.QuitPlan, error) {
	var err error
	if plan.StartLimit, err = strconv.Atoi(strings.TrimSpace(f.StartLimit)); err != nil {
		return plan, fmt.Errorf("invalid starting limit: %w", err)
	}
	if plan.DailyStep, err = strconv.Atoi(strings.TrimSpace(f.DailyStep)); err != nil {
		return plan, fmt.Errorf("invalid daily reduction: %w", err)
	}
	if plan.MinLimit, err = strconv.Atoi(strings.TrimSpace(f.MinLimit)); err != nil {
		return plan, fmt.Errorf("invalid minimum limit: %w", err)
	}
	if plan.StartDate, err = utils.ParseDate(strings.TrimSpace(f.StartDate)); err != nil {
		return plan, err
	}
	return plan, nil
}
