// Package dashboard renders today's count against the daily ceiling.
package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/status"
	"github.com/haikegani/QuitSmoke/internal/tracker"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

const maxBarWidth = 60

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

type Model struct {
	snap   tracker.Snapshot
	loaded bool
	bar    progress.Model
}

func New(width int) Model {
	m := Model{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.SetWidth(width)
	return m
}

func (m *Model) SetWidth(width int) {
	w := width - 8
	if w > maxBarWidth || w <= 0 {
		w = maxBarWidth
	}
	m.bar.Width = w
}

func (m *Model) SetSnapshot(snap tracker.Snapshot) {
	m.snap = snap
	m.loaded = true
}

// Snapshot returns the figures currently on screen.
func (m Model) Snapshot() tracker.Snapshot {
	return m.snap
}

// Ratio is the filled share of the bar, clamped to [0, 1].
func (m Model) Ratio() float64 {
	switch {
	case m.snap.Count == 0:
		return 0
	case m.snap.Count >= m.snap.Limit:
		return 1
	default:
		return float64(m.snap.Count) / float64(m.snap.Limit)
	}
}

func (m Model) View() string {
	if !m.loaded {
		return mutedStyle.Render("Loading...")
	}

	day := utils.StartOfDay(m.snap.Date, nil)
	title := titleStyle.Render(fmt.Sprintf("Today, %s", day.Format("Mon Jan 2")))
	counter := countStyle.Render(fmt.Sprintf("%d / %d", m.snap.Count, m.snap.Limit))

	left := mutedStyle.Render(fmt.Sprintf("%d left", m.snap.Remaining))
	msgStyle := okStyle
	if m.snap.Status == models.StatusAtOrOverLimit {
		left = overStyle.Render("limit reached")
		msgStyle = overStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		counter+"  "+left,
		m.bar.ViewAs(m.Ratio()),
		"",
		msgStyle.Render(status.Message(m.snap.Status)),
		mutedStyle.Render(fmt.Sprintf("Day %d of your plan", m.snap.DaysOnPlan+1)),
	)
}
