// Package limit computes the daily ceiling of a quit plan.
//
// Every function here is pure: the same plan and date always give the same
// ceiling, so results can be cached or computed from any goroutine.
package limit

import (
	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/models"
)

// CeilingFor returns the maximum number of events allowed on target.
// Dates before the plan start yield ceilings above StartLimit.
// The plan is not validated; a negative MinLimit can produce a negative ceiling.
func CeilingFor(plan models.QuitPlan, target civil.Date) int {
	elapsed := target.DaysSince(plan.StartDate)
	raw := plan.StartLimit - elapsed*plan.DailyStep
	if raw < plan.MinLimit {
		return plan.MinLimit
	}
	return raw
}

// DaysElapsed returns the number of whole days the plan has been running on
// target. Dates before the start count as zero.
func DaysElapsed(plan models.QuitPlan, target civil.Date) int {
	days := target.DaysSince(plan.StartDate)
	if days < 0 {
		return 0
	}
	return days
}

// MaxScheduleDays is the longest schedule returned by Schedule.
const MaxScheduleDays = constants.MaxWindowDays

// Schedule returns the ceilings for days consecutive dates starting at from,
// at most MaxScheduleDays of them.
func Schedule(plan models.QuitPlan, from civil.Date, days int) []models.DailyRecord {
	if days <= 0 {
		return nil
	}
	days = min(days, MaxScheduleDays)
	out := make([]models.DailyRecord, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		out = append(out, models.DailyRecord{Date: d, Limit: CeilingFor(plan, d)})
	}
	return out
}

// FloorReachedOn returns the first date on which the ceiling hits MinLimit.
// ok is false when the ceiling never declines to the floor.
func FloorReachedOn(plan models.QuitPlan) (date civil.Date, ok bool) {
	if plan.StartLimit <= plan.MinLimit {
		return plan.StartDate, true
	}
	if plan.DailyStep <= 0 {
		return civil.Date{}, false
	}
	gap := plan.StartLimit - plan.MinLimit
	days := (gap + plan.DailyStep - 1) / plan.DailyStep
	return plan.StartDate.AddDays(days), true
}
