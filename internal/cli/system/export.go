package system

import (
	"errors"

	"github.com/haikegani/QuitSmoke/internal/cli"
	apperrors "github.com/haikegani/QuitSmoke/internal/errors"
	"github.com/haikegani/QuitSmoke/internal/metrics"
)

// ExportMetricsCmd writes today's figures in the Prometheus text format.
type ExportMetricsCmd struct {
	Textfile string `help:"Target .prom file. Defaults to metrics_textfile from the config." type:"path"`
	Days     int    `help:"Progress window for the window_* gauges. Defaults to the chart_window_days setting."`
}

func (c *ExportMetricsCmd) Run(ctx *cli.Context) error {
	path := c.Textfile
	if path == "" {
		path = ctx.Config.MetricsTextfile
	}
	if path == "" {
		return apperrors.WithHint(errors.New("no metrics textfile configured"),
			"pass --textfile or set metrics_textfile in the config file")
	}

	window := c.Days
	if window <= 0 {
		settings, err := ctx.Tracker.Settings()
		if err != nil {
			return err
		}
		window = settings.ChartWindowDays
	}

	if err := metrics.Export(ctx.Tracker, ctx.UserID, window, path); err != nil {
		return err
	}
	ctx.Printf("Wrote metrics to %s\n", path)
	return nil
}
