package system

import (
	"fmt"
	"time"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpPlan     *DebugDumpPlanCmd     `cmd:"" help:"Dump the stored plan as JSON."`
	DumpEvents   *DebugDumpEventsCmd   `cmd:"" help:"Dump logged events as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return ctx.PrintJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpPlanCmd struct{}

func (cmd *DebugDumpPlanCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Store.GetPlan(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	return ctx.PrintJSON(plan)
}

type DebugDumpEventsCmd struct {
	Since string `help:"Only events on or after this date (YYYY-MM-DD)."`
}

func (cmd *DebugDumpEventsCmd) Run(ctx *cli.Context) error {
	var since time.Time
	if cmd.Since != "" {
		day, err := utils.ParseDate(cmd.Since)
		if err != nil {
			return err
		}
		settings, err := ctx.Tracker.Settings()
		if err != nil {
			return err
		}
		loc, err := utils.LocationFromSettings(settings)
		if err != nil {
			return err
		}
		since = utils.StartOfDay(day, loc)
	}

	events, err := ctx.Store.ListEvents(ctx.UserID, since)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	return ctx.PrintJSON(events)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return ctx.PrintJSON(settings)
}
