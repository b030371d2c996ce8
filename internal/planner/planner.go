// Package planner turns a consumption questionnaire into a quit plan.
package planner

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/models"
)

var ErrInvalidInput = errors.New("invalid planner input")

// Goal is what the user wants to achieve.
type Goal string

const (
	GoalQuit   Goal = "quit"
	GoalReduce Goal = "reduce"
)

// Preset is a rough consumption level for users who don't know their count.
type Preset int

const (
	PresetLittle Preset = iota
	PresetMedium
	PresetALot
	PresetVeryMuch
)

var presetFactors = map[Preset]float64{
	PresetLittle:   0.5,
	PresetMedium:   1,
	PresetALot:     1.5,
	PresetVeryMuch: 2.5,
}

// WeekendPattern says how much more the user smokes on weekends or under stress.
type WeekendPattern int

const (
	WeekendSame WeekendPattern = iota
	WeekendSlightlyMore
	WeekendMuchMore
)

var weekendMultipliers = [...]float64{1, 1.2, 1.5}

const (
	cigarettesPerPack = 20
	sessionSticks     = 1.5
	planHorizonDays   = 30
	milestoneEvery    = 7
	maxMilestones     = 12
	shownMilestones   = 8
	MinReduceTarget   = 10
	MaxReduceTarget   = 90
)

// Input is the answered questionnaire.
type Input struct {
	Product        string
	CurrentDaily   int
	YearsConsuming float64
	Goal           Goal
	// ReduceTarget is the percentage to cut when Goal is GoalReduce.
	ReduceTarget int
}

// Milestone is the expected daily amount after a number of weeks.
type Milestone struct {
	Day    int
	Amount int
}

// Proposal is a computed plan ready for review.
type Proposal struct {
	Product        Product
	CurrentDaily   int
	DailyReduction int
	TargetFloor    float64
	CompletionDays int
	Advice         string
	Milestones     []Milestone
}

// EstimateFromPacks converts packs per day into cigarettes, adjusted for
// weekend smoking.
func EstimateFromPacks(packs float64, pattern WeekendPattern) (int, error) {
	if packs <= 0 {
		return 0, fmt.Errorf("%w: packs per day must be positive", ErrInvalidInput)
	}
	if pattern < WeekendSame || int(pattern) >= len(weekendMultipliers) {
		return 0, fmt.Errorf("%w: unknown weekend pattern %d", ErrInvalidInput, pattern)
	}
	base := math.Round(packs * cigarettesPerPack)
	return int(math.Round(base * weekendMultipliers[pattern])), nil
}

// EstimateFromSessions converts heated tobacco sessions per day into sticks.
func EstimateFromSessions(times int) (int, error) {
	if times <= 0 {
		return 0, fmt.Errorf("%w: sessions per day must be positive", ErrInvalidInput)
	}
	return int(math.Round(float64(times) * sessionSticks)), nil
}

// EstimateFromPreset scales the product's default daily amount.
func EstimateFromPreset(product string, preset Preset) (int, error) {
	p, err := Lookup(product)
	if err != nil {
		return 0, err
	}
	factor, ok := presetFactors[preset]
	if !ok {
		return 0, fmt.Errorf("%w: unknown preset %d", ErrInvalidInput, preset)
	}
	return int(math.Round(float64(p.DefaultDaily) * factor)), nil
}

// Calculate builds a proposal from in.
func Calculate(in Input) (Proposal, error) {
	product, err := Lookup(in.Product)
	if err != nil {
		return Proposal{}, err
	}
	if in.CurrentDaily < product.Min || in.CurrentDaily > product.Max {
		return Proposal{}, fmt.Errorf("%w: daily amount %d outside %d..%d for %s",
			ErrInvalidInput, in.CurrentDaily, product.Min, product.Max, product.Key)
	}
	if in.YearsConsuming < 0 {
		return Proposal{}, fmt.Errorf("%w: years consuming cannot be negative", ErrInvalidInput)
	}

	daily := float64(in.CurrentDaily)
	var reduction int
	var floor float64

	switch in.Goal {
	case GoalQuit, "":
		reduction = int(math.Ceil(daily / planHorizonDays))
	case GoalReduce:
		if in.ReduceTarget < MinReduceTarget || in.ReduceTarget > MaxReduceTarget {
			return Proposal{}, fmt.Errorf("%w: reduce target %d%% outside %d..%d",
				ErrInvalidInput, in.ReduceTarget, MinReduceTarget, MaxReduceTarget)
		}
		target := float64(in.ReduceTarget)
		reduction = int(math.Ceil(daily * target / 100 / planHorizonDays))
		floor = daily * (100 - target) / 100
	default:
		return Proposal{}, fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, in.Goal)
	}

	return Proposal{
		Product:        product,
		CurrentDaily:   in.CurrentDaily,
		DailyReduction: reduction,
		TargetFloor:    floor,
		CompletionDays: int(math.Ceil(daily / float64(reduction))),
		Advice:         advice(in, product),
		Milestones:     milestones(daily, float64(reduction), floor),
	}, nil
}

func milestones(daily, reduction, floor float64) []Milestone {
	var out []Milestone
	day := 0
	amount := daily
	for amount > floor {
		day += milestoneEvery
		amount = math.Max(floor, daily-reduction*float64(day/milestoneEvery))
		out = append(out, Milestone{Day: day, Amount: int(math.Ceil(math.Max(0, amount)))})
		if len(out) >= maxMilestones {
			break
		}
	}
	if len(out) > shownMilestones {
		out = out[:shownMilestones]
	}
	return out
}

func advice(in Input, product Product) string {
	parts := []string{"Great decision to quit!"}
	if in.YearsConsuming*10 > 50 {
		parts = append(parts, "A long history means you are stronger than you think. Exercise will help.")
	}
	if in.CurrentDaily > product.DefaultDaily*2 {
		parts = append(parts, "Start with small steps, slowly but surely.")
	}
	return strings.Join(parts, " ")
}

// MilestoneDate returns the calendar date of m for a plan starting on start.
func MilestoneDate(start civil.Date, m Milestone) civil.Date {
	return start.AddDays(m.Day)
}

// QuitPlan converts the proposal into a stored plan starting on start.
func (p Proposal) QuitPlan(userID string, start civil.Date, now time.Time) models.QuitPlan {
	return models.QuitPlan{
		UserID:     userID,
		StartLimit: p.CurrentDaily,
		DailyStep:  p.DailyReduction,
		MinLimit:   int(math.Ceil(p.TargetFloor)),
		StartDate:  start,
		Product:    p.Product.Key,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
