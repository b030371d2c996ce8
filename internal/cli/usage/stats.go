package usage

import (
	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/limit"
	"github.com/haikegani/QuitSmoke/internal/progress"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

type StatsCmd struct {
	JSON bool `help:"Print as JSON."`
}

type stats struct {
	Today       tracker.Snapshot `json:"today"`
	AllTime     progress.Summary `json:"all_time"`
	FirstDay    *civil.Date      `json:"first_day,omitempty"`
	FloorDate   *civil.Date      `json:"floor_date,omitempty"`
	FloorAmount int              `json:"floor_amount"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Today(ctx.UserID)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.Progress(ctx.UserID, 0)
	if err != nil {
		return err
	}
	plan, err := ctx.Tracker.Plan(ctx.UserID)
	if err != nil {
		return err
	}

	out := stats{Today: snap, AllTime: report.Summary, FloorAmount: plan.MinLimit}
	if len(report.Records) > 0 {
		first := report.Records[0].Date
		out.FirstDay = &first
	}
	if d, ok := limit.FloorReachedOn(plan); ok {
		out.FloorDate = &d
	}

	if c.JSON {
		return ctx.PrintJSON(out)
	}

	ctx.Println("All time:")
	ctx.Printf("  Puffs logged:     %d\n", out.AllTime.TotalEvents)
	ctx.Printf("  Active days:      %d\n", out.AllTime.ActiveDays)
	ctx.Printf("  Average per day:  %d\n", out.AllTime.AveragePerDay)
	ctx.Printf("  Days under limit: %d\n", out.AllTime.DaysUnderLimit)
	ctx.Printf("  Days at or over:  %d\n", out.AllTime.DaysOverLimit)
	if out.FirstDay != nil {
		ctx.Printf("  Tracking since:   %s\n", out.FirstDay)
	}
	ctx.Println()
	ctx.Println("Plan:")
	ctx.Printf("  Day on plan:      %d\n", snap.DaysOnPlan+1)
	ctx.Printf("  Today's limit:    %d\n", snap.Limit)
	if out.FloorDate != nil {
		ctx.Printf("  Reaches %d on:    %s\n", out.FloorAmount, out.FloorDate)
	} else {
		ctx.Println("  The limit does not decline with the current daily step.")
	}
	return nil
}
