package system

import (
	"fmt"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/notifier"
	"github.com/haikegani/QuitSmoke/internal/status"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

// NotifyCmd sends today's status to the tray app. It is meant to be run
// from a scheduler such as cron.
type NotifyCmd struct {
	DryRun bool `help:"Print the notification to stdout instead of sending it."`
}

// sender is swapped out in tests.
var sender func() tracker.Notifier = func() tracker.Notifier { return notifier.New() }

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Today(ctx.UserID)
	if err != nil {
		return err
	}

	msg := statusLine(snap)
	if c.DryRun {
		ctx.Println("[DryRun] " + msg)
		return nil
	}
	if err := sender().Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func statusLine(snap tracker.Snapshot) string {
	line := fmt.Sprintf("%d of %d used today", snap.Count, snap.Limit)
	if snap.Remaining > 0 {
		line += fmt.Sprintf(", %d left", snap.Remaining)
	}
	return line + ". " + status.Message(snap.Status)
}
