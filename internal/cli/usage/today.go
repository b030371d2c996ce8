package usage

import (
	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/status"
)

type TodayCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Today(ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(snap)
	}

	ctx.Printf("%s (day %d of your plan)\n", snap.Date, snap.DaysOnPlan+1)
	ctx.Printf("  Used:      %d\n", snap.Count)
	ctx.Printf("  Limit:     %d\n", snap.Limit)
	ctx.Printf("  Remaining: %d\n", snap.Remaining)
	ctx.Println()
	ctx.Println(status.Message(snap.Status))
	return nil
}
