package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/config"
	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.New(config.Default(), store)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Strict Limit:      true") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tz := "Europe/Moscow"
	days := 30
	strict := false
	cmd := &SettingsCmd{Timezone: &tz, ChartWindowDays: &days, StrictLimit: &strict}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got.Timezone != tz || got.ChartWindowDays != days || got.StrictLimit {
		t.Errorf("settings = %+v", got)
	}
	if !got.NotifyOnLimit {
		t.Error("untouched setting changed")
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tz := "Mars/Olympus_Mons"
	if err := (&SettingsCmd{Timezone: &tz}).Run(ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}

	days := 0
	if err := (&SettingsCmd{ChartWindowDays: &days}).Run(ctx); err == nil {
		t.Error("expected error for zero chart window")
	}

	days = constants.MaxWindowDays + 1
	if err := (&SettingsCmd{ChartWindowDays: &days}).Run(ctx); err == nil {
		t.Error("expected error for chart window over the maximum")
	}
	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got.ChartWindowDays != constants.DefaultChartWindowDays {
		t.Errorf("ChartWindowDays = %d, want unchanged %d", got.ChartWindowDays, constants.DefaultChartWindowDays)
	}
}
