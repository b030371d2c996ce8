// Package progress folds usage events into per-day records for charting.
package progress

import (
	"math"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/limit"
	"github.com/haikegani/QuitSmoke/internal/models"
)

// Options controls which days Aggregate returns.
type Options struct {
	// Window is the number of consecutive days to return. Zero returns every
	// day that has at least one event (sparse). A positive window is
	// zero-filled so that charts get one point per day. Windows longer than
	// MaxWindow are cut to MaxWindow days.
	Window int
	// Through is the last day of a fixed window. When zero, the window ends on
	// the latest day that has an event.
	Through civil.Date
	// Location decides which calendar day an event belongs to. Nil means UTC.
	Location *time.Location
}

// MaxWindow is the longest zero-filled window Aggregate returns.
const MaxWindow = constants.MaxWindowDays

// Summary holds the headline statistics of a record series.
type Summary struct {
	TotalEvents    int `json:"total_events"`
	ActiveDays     int `json:"active_days"`
	AveragePerDay  int `json:"average_per_day"`
	DaysUnderLimit int `json:"days_under_limit"`
	DaysOverLimit  int `json:"days_over_limit"`
}

// Aggregate groups events by calendar day and pairs each day with the plan's
// ceiling. The result is strictly ascending by date with no duplicates.
func Aggregate(events []models.UsageEvent, plan models.QuitPlan, opts Options) []models.DailyRecord {
	counts := countByDay(events, opts.Location)

	if opts.Window <= 0 {
		days := make([]civil.Date, 0, len(counts))
		for d := range counts {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		records := make([]models.DailyRecord, 0, len(days))
		for _, d := range days {
			records = append(records, models.DailyRecord{
				Date:  d,
				Count: counts[d],
				Limit: limit.CeilingFor(plan, d),
			})
		}
		return records
	}

	through := opts.Through
	if through == (civil.Date{}) {
		latest, ok := latestDay(counts)
		if !ok {
			return []models.DailyRecord{}
		}
		through = latest
	}

	window := min(opts.Window, MaxWindow)
	first := through.AddDays(-(window - 1))
	records := make([]models.DailyRecord, 0, window)
	for d := first; !d.After(through); d = d.AddDays(1) {
		records = append(records, models.DailyRecord{
			Date:  d,
			Count: counts[d],
			Limit: limit.CeilingFor(plan, d),
		})
	}
	return records
}

// CountOn returns the number of events falling on day in loc.
func CountOn(events []models.UsageEvent, day civil.Date, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	n := 0
	for _, e := range events {
		if civil.DateOf(e.OccurredAt.In(loc)) == day {
			n++
		}
	}
	return n
}

// Summarize computes totals over records. Days without events do not count
// towards ActiveDays or the average.
func Summarize(records []models.DailyRecord) Summary {
	var s Summary
	for _, r := range records {
		if r.Count == 0 {
			continue
		}
		s.TotalEvents += r.Count
		s.ActiveDays++
		if r.Count < r.Limit {
			s.DaysUnderLimit++
		} else {
			s.DaysOverLimit++
		}
	}
	if s.ActiveDays > 0 {
		s.AveragePerDay = int(math.Round(float64(s.TotalEvents) / float64(s.ActiveDays)))
	}
	return s
}

func countByDay(events []models.UsageEvent, loc *time.Location) map[civil.Date]int {
	if loc == nil {
		loc = time.UTC
	}
	counts := make(map[civil.Date]int)
	for _, e := range events {
		counts[civil.DateOf(e.OccurredAt.In(loc))]++
	}
	return counts
}

func latestDay(counts map[civil.Date]int) (civil.Date, bool) {
	var latest civil.Date
	found := false
	for d := range counts {
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}
