package plans

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/huh"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/planner"
)

// Ways to arrive at the current daily amount.
const (
	MethodExact    = "exact"
	MethodPacks    = "packs"
	MethodSessions = "sessions"
	MethodPreset   = "preset"
)

// Answers holds the raw questionnaire answers as typed into the form.
type Answers struct {
	Product      string
	Goal         planner.Goal
	Method       string
	Daily        string
	Packs        string
	Weekend      planner.WeekendPattern
	Sessions     string
	Preset       planner.Preset
	Years        string
	ReduceTarget string
}

// Input converts the answers into planner input, estimating the daily
// amount with the chosen method.
func (a Answers) Input() (planner.Input, error) {
	in := planner.Input{Product: a.Product, Goal: a.Goal}

	var err error
	switch a.Method {
	case MethodExact, "":
		in.CurrentDaily, err = strconv.Atoi(strings.TrimSpace(a.Daily))
		if err != nil {
			return planner.Input{}, fmt.Errorf("daily amount: %w", err)
		}
	case MethodPacks:
		packs, perr := strconv.ParseFloat(strings.TrimSpace(a.Packs), 64)
		if perr != nil {
			return planner.Input{}, fmt.Errorf("packs per day: %w", perr)
		}
		in.CurrentDaily, err = planner.EstimateFromPacks(packs, a.Weekend)
	case MethodSessions:
		times, serr := strconv.Atoi(strings.TrimSpace(a.Sessions))
		if serr != nil {
			return planner.Input{}, fmt.Errorf("sessions per day: %w", serr)
		}
		in.CurrentDaily, err = planner.EstimateFromSessions(times)
	case MethodPreset:
		in.CurrentDaily, err = planner.EstimateFromPreset(a.Product, a.Preset)
	default:
		return planner.Input{}, fmt.Errorf("unknown estimation method %q", a.Method)
	}
	if err != nil {
		return planner.Input{}, err
	}

	if s := strings.TrimSpace(a.Years); s != "" {
		if in.YearsConsuming, err = strconv.ParseFloat(s, 64); err != nil {
			return planner.Input{}, fmt.Errorf("years: %w", err)
		}
	}
	if a.Goal == planner.GoalReduce {
		if in.ReduceTarget, err = strconv.Atoi(strings.TrimSpace(a.ReduceTarget)); err != nil {
			return planner.Input{}, fmt.Errorf("reduce target: %w", err)
		}
	}
	return in, nil
}

// NewQuestionnaire builds the wizard form bound to a.
func NewQuestionnaire(a *Answers) *huh.Form {
	productOptions := make([]huh.Option[string], 0)
	for _, p := range planner.Products() {
		productOptions = append(productOptions, huh.NewOption(p.Name, p.Key))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you use?").
				Options(productOptions...).
				Value(&a.Product),
			huh.NewSelect[planner.Goal]().
				Title("What is your goal?").
				Options(
					huh.NewOption("Quit completely", planner.GoalQuit),
					huh.NewOption("Cut down", planner.GoalReduce),
				).
				Value(&a.Goal),
			huh.NewSelect[string]().
				Title("How much do you use per day?").
				Options(
					huh.NewOption("I know the exact amount", MethodExact),
					huh.NewOption("I count in packs", MethodPacks),
					huh.NewOption("I count heating sessions", MethodSessions),
					huh.NewOption("I'm not sure", MethodPreset),
				).
				Value(&a.Method),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount per day").
				DescriptionFunc(func() string { return productTip(a.Product) }, &a.Product).
				Value(&a.Daily).
				Validate(positiveInt),
		).WithHideFunc(func() bool { return a.Method != MethodExact }),
		huh.NewGroup(
			huh.NewInput().
				Title("Packs per day").
				Value(&a.Packs).
				Validate(positiveFloat),
			huh.NewSelect[planner.WeekendPattern]().
				Title("On weekends or under stress you smoke").
				Options(
					huh.NewOption("About the same", planner.WeekendSame),
					huh.NewOption("A little more", planner.WeekendSlightlyMore),
					huh.NewOption("Much more", planner.WeekendMuchMore),
				).
				Value(&a.Weekend),
		).WithHideFunc(func() bool { return a.Method != MethodPacks }),
		huh.NewGroup(
			huh.NewInput().
				Title("Sessions per day").
				Value(&a.Sessions).
				Validate(positiveInt),
		).WithHideFunc(func() bool { return a.Method != MethodSessions }),
		huh.NewGroup(
			huh.NewSelect[planner.Preset]().
				Title("Roughly how much?").
				Options(
					huh.NewOption("A little", planner.PresetLittle),
					huh.NewOption("Average", planner.PresetMedium),
					huh.NewOption("A lot", planner.PresetALot),
					huh.NewOption("Very much", planner.PresetVeryMuch),
				).
				Value(&a.Preset),
		).WithHideFunc(func() bool { return a.Method != MethodPreset }),
		huh.NewGroup(
			huh.NewInput().
				Title("How many years have you been using it?").
				Value(&a.Years).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a number of years")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cut by how many percent?").
				Description(fmt.Sprintf("%d to %d", planner.MinReduceTarget, planner.MaxReduceTarget)).
				Value(&a.ReduceTarget).
				Validate(func(s string) error {
					v, err := strconv.Atoi(s)
					if err != nil || v < planner.MinReduceTarget || v > planner.MaxReduceTarget {
						return fmt.Errorf("enter a percentage between %d and %d", planner.MinReduceTarget, planner.MaxReduceTarget)
					}
					return nil
				}),
		).WithHideFunc(func() bool { return a.Goal != planner.GoalReduce }),
	).WithTheme(huh.ThemeDracula())
}

func productTip(key string) string {
	if p, err := planner.Lookup(key); err == nil {
		return fmt.Sprintf("%s per day. %s.", p.Unit, p.Tip)
	}
	return ""
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

func positiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a number above zero")
	}
	return nil
}

type PlanWizardCmd struct {
	Product      string  `help:"Product key (${products}). Answers the questionnaire when set with --daily."`
	Daily        int     `help:"Current amount per day."`
	Years        float64 `help:"Years of use."`
	Goal         string  `help:"Goal: quit or reduce." enum:"quit,reduce" default:"quit"`
	ReduceTarget int     `help:"Percent to cut when the goal is reduce." default:"50"`
	Start        string  `help:"Start date (YYYY-MM-DD or 'today')." default:"today"`
	Yes          bool    `help:"Save the proposal without asking." short:"y"`
}

func (c *PlanWizardCmd) Run(ctx *cli.Context) error {
	var in planner.Input
	if c.Product != "" && c.Daily > 0 {
		in = planner.Input{
			Product:        c.Product,
			CurrentDaily:   c.Daily,
			YearsConsuming: c.Years,
			Goal:           planner.Goal(c.Goal),
			ReduceTarget:   c.ReduceTarget,
		}
	} else {
		answers := &Answers{
			Product:      c.Product,
			Goal:         planner.Goal(c.Goal),
			Method:       MethodExact,
			Preset:       planner.PresetMedium,
			ReduceTarget: strconv.Itoa(c.ReduceTarget),
		}
		if answers.Product == "" {
			answers.Product = constants.DefaultProduct
		}
		if err := NewQuestionnaire(answers).Run(); err != nil {
			return err
		}
		var err error
		if in, err = answers.Input(); err != nil {
			return err
		}
	}

	proposal, err := planner.Calculate(in)
	if err != nil {
		return err
	}
	start, err := resolveDate(ctx, c.Start)
	if err != nil {
		return err
	}
	printProposal(ctx, proposal, start)

	save := c.Yes
	if !save {
		if err := huh.NewConfirm().Title("Save this plan?").Value(&save).Run(); err != nil {
			return err
		}
	}
	if !save {
		ctx.Println("Plan not saved.")
		return nil
	}

	if err := ctx.Tracker.UpdatePlan(proposal.QuitPlan(ctx.UserID, start, time.Now())); err != nil {
		return err
	}
	ctx.Println("Plan saved.")
	return nil
}

func printProposal(ctx *cli.Context, p planner.Proposal, start civil.Date) {
	ctx.Printf("%s, starting %s\n", p.Product.Name, start)
	ctx.Printf("  Now:            %d %s per day\n", p.CurrentDaily, p.Product.Unit)
	ctx.Printf("  Cut by:         %d per day\n", p.DailyReduction)
	if p.TargetFloor > 0 {
		ctx.Printf("  Target:         %.0f per day\n", p.TargetFloor)
	}
	ctx.Printf("  Done in about:  %d days\n", p.CompletionDays)
	if len(p.Milestones) > 0 {
		ctx.Println("  Milestones:")
		for _, m := range p.Milestones {
			ctx.Printf("    %s  %3d\n", planner.MilestoneDate(start, m), m.Amount)
		}
	}
	ctx.Println()
	ctx.Println(p.Advice)
	ctx.Println()
}
