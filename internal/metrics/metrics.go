// Package metrics exports the tracker's daily figures in the Prometheus
// text format so a node_exporter textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

// Collector holds one registry of gauges labelled by user.
type Collector struct {
	registry *prometheus.Registry

	TodayCount     *prometheus.GaugeVec
	TodayLimit     *prometheus.GaugeVec
	TodayRemaining *prometheus.GaugeVec
	DaysOnPlan     *prometheus.GaugeVec
	Status         *prometheus.GaugeVec
	WindowEvents   *prometheus.GaugeVec
	WindowAverage  *prometheus.GaugeVec
	DaysOverLimit  *prometheus.GaugeVec
}

func gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: constants.MetricsNamespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func New() *Collector {
	c := &Collector{
		registry:       prometheus.NewRegistry(),
		TodayCount:     gauge("today_events", "Events logged today.", "user"),
		TodayLimit:     gauge("today_limit", "Today's ceiling from the quit plan.", "user"),
		TodayRemaining: gauge("today_remaining", "Events left before today's ceiling.", "user"),
		DaysOnPlan:     gauge("days_on_plan", "Whole days since the plan started.", "user"),
		Status:         gauge("today_status", "1 for the current status of today, 0 otherwise.", "user", "status"),
		WindowEvents:   gauge("window_events", "Events logged in the progress window.", "user", "window_days"),
		WindowAverage:  gauge("window_average_per_day", "Average events per active day in the progress window.", "user", "window_days"),
		DaysOverLimit:  gauge("window_days_over_limit", "Active days at or over the ceiling in the progress window.", "user", "window_days"),
	}
	c.registry.MustRegister(
		c.TodayCount, c.TodayLimit, c.TodayRemaining, c.DaysOnPlan,
		c.Status, c.WindowEvents, c.WindowAverage, c.DaysOverLimit,
	)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records one user's snapshot and progress report.
func (c *Collector) Observe(userID string, snap tracker.Snapshot, window int, report tracker.Report) {
	c.TodayCount.WithLabelValues(userID).Set(float64(snap.Count))
	c.TodayLimit.WithLabelValues(userID).Set(float64(snap.Limit))
	c.TodayRemaining.WithLabelValues(userID).Set(float64(snap.Remaining))
	c.DaysOnPlan.WithLabelValues(userID).Set(float64(snap.DaysOnPlan))

	for _, st := range []models.Status{models.StatusNoUsage, models.StatusUnderLimit, models.StatusAtOrOverLimit} {
		v := 0.0
		if st == snap.Status {
			v = 1
		}
		c.Status.WithLabelValues(userID, st.String()).Set(v)
	}

	w := fmt.Sprint(window)
	c.WindowEvents.WithLabelValues(userID, w).Set(float64(report.Summary.TotalEvents))
	c.WindowAverage.WithLabelValues(userID, w).Set(float64(report.Summary.AveragePerDay))
	c.DaysOverLimit.WithLabelValues(userID, w).Set(float64(report.Summary.DaysOverLimit))
}

// WriteTextfile atomically writes the registry to path.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Export collects a user's figures from svc and writes them to path.
func Export(svc *tracker.Service, userID string, window int, path string) error {
	snap, err := svc.Today(userID)
	if err != nil {
		return err
	}
	report, err := svc.Progress(userID, window)
	if err != nil {
		return err
	}

	c := New()
	c.Observe(userID, snap, window, report)
	return c.WriteTextfile(path)
}
