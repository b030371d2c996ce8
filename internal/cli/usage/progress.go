package usage

import (
	"fmt"
	"strings"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

const barWidth = 30

type ProgressCmd struct {
	Days  int  `help:"Number of days to show, ending today. Defaults to the chart_window_days setting." short:"d" xor:"range"`
	Month bool `help:"Show the last 30 days." xor:"range"`
	All   bool `help:"Show every day with at least one puff." xor:"range"`
	JSON  bool `help:"Print as JSON."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	if c.Days < 0 || c.Days > constants.MaxWindowDays {
		return fmt.Errorf("--days must be between 1 and %d (got %d)", constants.MaxWindowDays, c.Days)
	}
	window := c.Days
	switch {
	case c.All:
		window = 0
	case c.Month:
		window = constants.LongWindowDays
	case window == 0:
		settings, err := ctx.Tracker.Settings()
		if err != nil {
			return err
		}
		window = settings.ChartWindowDays
		if err := tracker.ValidateWindow(window); err != nil {
			return fmt.Errorf("chart_window_days setting: %w", err)
		}
	}

	report, err := ctx.Tracker.Progress(ctx.UserID, window)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(report)
	}

	if len(report.Records) == 0 {
		ctx.Println("No puffs recorded yet.")
		return nil
	}

	scale := maxValue(report.Records)
	for _, r := range report.Records {
		ctx.Printf("%s  %-*s %3d/%-3d %s\n", r.Date, barWidth, bar(r.Count, scale), r.Count, r.Limit, marker(r))
	}
	ctx.Println()
	s := report.Summary
	ctx.Printf("Total %d over %d active days, %d per day on average. Under limit %d, at or over %d.\n",
		s.TotalEvents, s.ActiveDays, s.AveragePerDay, s.DaysUnderLimit, s.DaysOverLimit)
	return nil
}

func maxValue(records []models.DailyRecord) int {
	m := 1
	for _, r := range records {
		if r.Count > m {
			m = r.Count
		}
		if r.Limit > m {
			m = r.Limit
		}
	}
	return m
}

func bar(count, scale int) string {
	n := count * barWidth / scale
	if count > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func marker(r models.DailyRecord) string {
	switch {
	case r.Count == 0:
		return ""
	case r.Count < r.Limit:
		return "ok"
	default:
		return "over"
	}
}
