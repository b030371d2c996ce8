package usage

import (
	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/status"
)

type PuffCmd struct {
	JSON bool `help:"Print the updated day as JSON."`
}

func (c *PuffCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.LogPuff(ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(snap)
	}

	ctx.Printf("Logged. %d of %d today", snap.Count, snap.Limit)
	if snap.Remaining > 0 {
		ctx.Printf(", %d left", snap.Remaining)
	}
	ctx.Println(".")
	ctx.Println(status.Message(snap.Status))
	return nil
}
