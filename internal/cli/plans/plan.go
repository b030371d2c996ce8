package plans

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/limit"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/planner"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

type PlanShowCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Tracker.Plan(ctx.UserID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(plan)
	}

	today, err := ctx.Tracker.CurrentDay()
	if err != nil {
		return err
	}

	ctx.Println("Quit plan:")
	ctx.Printf("  Product:       %s\n", productName(plan.Product))
	ctx.Printf("  Start date:    %s\n", plan.StartDate)
	ctx.Printf("  Start limit:   %d per day\n", plan.StartLimit)
	ctx.Printf("  Daily step:    -%d per day\n", plan.DailyStep)
	ctx.Printf("  Floor:         %d per day\n", plan.MinLimit)
	ctx.Printf("  Today's limit: %d\n", limit.CeilingFor(plan, today))
	if d, ok := limit.FloorReachedOn(plan); ok {
		ctx.Printf("  Floor reached: %s\n", d)
	}
	return nil
}

func productName(key string) string {
	if p, err := planner.Lookup(key); err == nil {
		return p.Name
	}
	if key == "" {
		return "-"
	}
	return key
}

type PlanSetCmd struct {
	StartLimit *int   `help:"Ceiling on the start date."`
	DailyStep  *int   `help:"Amount the ceiling drops each day."`
	MinLimit   *int   `help:"Floor the ceiling never goes below."`
	Start      string `help:"Start date (YYYY-MM-DD or 'today')."`
	Product    string `help:"Product key (${products})."`
}

func (c *PlanSetCmd) Run(ctx *cli.Context) error {
	plan, err := ctx.Tracker.Plan(ctx.UserID)
	if err != nil {
		return err
	}

	updated := false
	if c.StartLimit != nil {
		plan.StartLimit = *c.StartLimit
		updated = true
	}
	if c.DailyStep != nil {
		plan.DailyStep = *c.DailyStep
		updated = true
	}
	if c.MinLimit != nil {
		plan.MinLimit = *c.MinLimit
		updated = true
	}
	if c.Start != "" {
		start, err := resolveDate(ctx, c.Start)
		if err != nil {
			return err
		}
		plan.StartDate = start
		updated = true
	}
	if c.Product != "" {
		if _, err := planner.Lookup(c.Product); err != nil {
			return err
		}
		plan.Product = c.Product
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'quitsmoke plan show' to view the plan or flags to update it.")
		return nil
	}
	if err := ctx.Tracker.UpdatePlan(plan); err != nil {
		return err
	}
	ctx.Println("Plan updated. Past days are re-evaluated against the new plan.")
	return nil
}

// resolveDate accepts YYYY-MM-DD or "today" in the user's timezone.
func resolveDate(ctx *cli.Context, s string) (civil.Date, error) {
	if strings.EqualFold(s, "today") {
		return ctx.Tracker.CurrentDay()
	}
	return utils.ParseDate(s)
}

type PlanScheduleCmd struct {
	Days int    `help:"Number of days to list." default:"14"`
	From string `help:"First day (YYYY-MM-DD or 'today')." default:"today"`
	JSON bool   `help:"Print as JSON."`
}

func (c *PlanScheduleCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > limit.MaxScheduleDays {
		return fmt.Errorf("--days must be between 1 and %d (got %d)", limit.MaxScheduleDays, c.Days)
	}
	plan, err := ctx.Tracker.Plan(ctx.UserID)
	if err != nil {
		return err
	}
	from, err := resolveDate(ctx, c.From)
	if err != nil {
		return err
	}

	schedule := limit.Schedule(plan, from, c.Days)
	if c.JSON {
		return ctx.PrintJSON(schedule)
	}
	printSchedule(ctx, plan, schedule)
	return nil
}

func printSchedule(ctx *cli.Context, plan models.QuitPlan, schedule []models.DailyRecord) {
	for _, r := range schedule {
		note := ""
		if r.Limit == plan.MinLimit {
			note = "floor"
		}
		ctx.Printf("%s  %s  %3d  %s\n", r.Date, utils.StartOfDay(r.Date, nil).Weekday().String()[:3], r.Limit, note)
	}
}
