package settings

import (
	"fmt"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone        *string `help:"IANA timezone that decides where a day starts (\"Local\" for the system zone)."`
	ChartWindowDays *int    `help:"Days shown by default in progress views."`
	StrictLimit     *bool   `help:"Refuse to log once today's limit is reached."`
	NotifyOnLimit   *bool   `help:"Send a tray notification when today's limit is reached."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:          %s\n", settings.Timezone)
		ctx.Printf("  Chart Window Days: %d\n", settings.ChartWindowDays)
		ctx.Printf("  Strict Limit:      %v\n", settings.StrictLimit)
		ctx.Printf("  Notify On Limit:   %v\n", settings.NotifyOnLimit)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ChartWindowDays != nil {
		if *c.ChartWindowDays < 1 || *c.ChartWindowDays > constants.MaxWindowDays {
			return fmt.Errorf("chart window must be between 1 and %d days (got %d)", constants.MaxWindowDays, *c.ChartWindowDays)
		}
		settings.ChartWindowDays = *c.ChartWindowDays
		updated = true
	}
	if c.StrictLimit != nil {
		settings.StrictLimit = *c.StrictLimit
		updated = true
	}
	if c.NotifyOnLimit != nil {
		settings.NotifyOnLimit = *c.NotifyOnLimit
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
