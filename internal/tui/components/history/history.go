package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/tracker"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

const barWidth = 30

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	okBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	overBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Report   *tracker.Report
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil || len(m.Report.Records) == 0 {
		return "No puffs logged yet."
	}
	if m.height <= 0 {
		return m.content()
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetReport(report tracker.Report) {
	m.Report = &report
	m.Render()
}

func (m *Model) Render() {
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	if m.Report == nil {
		return ""
	}

	scale := 1
	for _, r := range m.Report.Records {
		scale = max(scale, r.Count, r.Limit)
	}

	var b strings.Builder
	for _, r := range m.Report.Records {
		filled := r.Count * barWidth / scale
		style := okBarStyle
		if r.Count > 0 && r.Count >= r.Limit {
			style = overBarStyle
		}
		day := utils.StartOfDay(r.Date, nil)
		fmt.Fprintf(&b, "%s %s%s %d/%d\n",
			dateStyle.Render(day.Format("Mon "+constants.DateFormat)),
			style.Render(strings.Repeat("█", filled)),
			strings.Repeat(" ", barWidth-filled),
			r.Count, r.Limit)
	}

	s := m.Report.Summary
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(fmt.Sprintf(
		"%d puffs on %d active days, about %d a day. Under the limit %d, at or over %d.",
		s.TotalEvents, s.ActiveDays, s.AveragePerDay, s.DaysUnderLimit, s.DaysOverLimit)))
	return b.String()
}
