package planner

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haikegani/QuitSmoke/internal/limit"
)

func TestCalculate_Quit(t *testing.T) {
	p, err := Calculate(Input{Product: "cigarettes", CurrentDaily: 20, YearsConsuming: 2, Goal: GoalQuit})
	require.NoError(t, err)

	assert.Equal(t, 1, p.DailyReduction)
	assert.Equal(t, 20, p.CompletionDays)
	assert.Zero(t, p.TargetFloor)
	require.Len(t, p.Milestones, 8)
	assert.Equal(t, Milestone{Day: 7, Amount: 19}, p.Milestones[0])
	assert.Equal(t, Milestone{Day: 56, Amount: 12}, p.Milestones[7])
	assert.Equal(t, "Great decision to quit!", p.Advice)
}

func TestCalculate_Reduce(t *testing.T) {
	p, err := Calculate(Input{Product: "cigarettes", CurrentDaily: 20, Goal: GoalReduce, ReduceTarget: 50})
	require.NoError(t, err)

	assert.Equal(t, 1, p.DailyReduction)
	assert.InDelta(t, 10.0, p.TargetFloor, 1e-9)
	require.Len(t, p.Milestones, 8)
	for _, m := range p.Milestones {
		assert.GreaterOrEqual(t, m.Amount, 10)
	}
}

func TestCalculate_MilestonesStopAtFloor(t *testing.T) {
	p, err := Calculate(Input{Product: "iqos", CurrentDaily: 50, Goal: GoalReduce, ReduceTarget: 90})
	require.NoError(t, err)

	// ceil(50*0.9/30) = 2 per week from 50 down to a floor of 5
	assert.Equal(t, 2, p.DailyReduction)
	require.Len(t, p.Milestones, 8)
	assert.Equal(t, 48, p.Milestones[0].Amount)

	p, err = Calculate(Input{Product: "vape", CurrentDaily: 3, Goal: GoalQuit})
	require.NoError(t, err)
	assert.Equal(t, []Milestone{{Day: 7, Amount: 2}, {Day: 14, Amount: 1}, {Day: 21, Amount: 0}}, p.Milestones)
	assert.Equal(t, 3, p.CompletionDays)
}

func TestCalculate_Advice(t *testing.T) {
	p, err := Calculate(Input{Product: "cigarettes", CurrentDaily: 41, YearsConsuming: 6})
	require.NoError(t, err)
	assert.Contains(t, p.Advice, "long history")
	assert.Contains(t, p.Advice, "small steps")

	p, err = Calculate(Input{Product: "cigarettes", CurrentDaily: 40, YearsConsuming: 5})
	require.NoError(t, err)
	assert.NotContains(t, p.Advice, "long history")
	assert.NotContains(t, p.Advice, "small steps")
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{name: "unknown product", in: Input{Product: "hookah", CurrentDaily: 5}},
		{name: "below range", in: Input{Product: "cigarettes", CurrentDaily: 0}},
		{name: "above range", in: Input{Product: "vape", CurrentDaily: 31}},
		{name: "negative years", in: Input{Product: "snus", CurrentDaily: 5, YearsConsuming: -1}},
		{name: "reduce target too low", in: Input{Product: "snus", CurrentDaily: 5, Goal: GoalReduce, ReduceTarget: 5}},
		{name: "reduce target too high", in: Input{Product: "snus", CurrentDaily: 5, Goal: GoalReduce, ReduceTarget: 95}},
		{name: "unknown goal", in: Input{Product: "snus", CurrentDaily: 5, Goal: "pause"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEstimates(t *testing.T) {
	n, err := EstimateFromPacks(1.5, WeekendSlightlyMore)
	require.NoError(t, err)
	assert.Equal(t, 36, n)

	n, err = EstimateFromPacks(1, WeekendMuchMore)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	_, err = EstimateFromPacks(0, WeekendSame)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EstimateFromPacks(1, WeekendPattern(7))
	assert.ErrorIs(t, err, ErrInvalidInput)

	n, err = EstimateFromSessions(7)
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	n, err = EstimateFromPreset("vape", PresetLittle)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = EstimateFromPreset("iqos", PresetVeryMuch)
	require.NoError(t, err)
	assert.Equal(t, 38, n)

	_, err = EstimateFromPreset("iqos", Preset(9))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProposal_QuitPlanFollowsCeiling(t *testing.T) {
	p, err := Calculate(Input{Product: "cigarettes", CurrentDaily: 25, Goal: GoalReduce, ReduceTarget: 30})
	require.NoError(t, err)

	start := civil.Date{Year: 2024, Month: 5, Day: 1}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	plan := p.QuitPlan("u1", start, now)

	assert.Equal(t, 25, plan.StartLimit)
	assert.Equal(t, 1, plan.DailyStep)
	assert.Equal(t, 18, plan.MinLimit) // ceil(17.5)
	assert.Equal(t, "cigarettes", plan.Product)
	assert.Equal(t, now, plan.CreatedAt)

	assert.Equal(t, 25, limit.CeilingFor(plan, start))
	assert.Equal(t, 18, limit.CeilingFor(plan, start.AddDays(60)))
	assert.Equal(t, civil.Date{Year: 2024, Month: 5, Day: 15}, MilestoneDate(start, Milestone{Day: 14}))
}

func TestCatalogue(t *testing.T) {
	assert.Equal(t, []string{"cigarettes", "glo", "iqos", "pipe", "snus", "vape"}, Keys())

	p, err := Lookup("glo")
	require.NoError(t, err)
	assert.Equal(t, 12, p.DefaultDaily)
	assert.Equal(t, 40, p.Max)
}
