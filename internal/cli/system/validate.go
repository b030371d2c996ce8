package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/haikegani/QuitSmoke/internal/cli"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage"
	"github.com/haikegani/QuitSmoke/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := checkData(ctx)
	if err != nil {
		return err
	}
	ctx.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

// checkData validates the stored plan and event log of the current user.
// A missing plan is not a conflict.
func checkData(ctx *cli.Context) (validation.ValidationResult, error) {
	plan, err := ctx.Store.GetPlan(ctx.UserID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return validation.ValidationResult{}, fmt.Errorf("failed to get plan: %w", err)
		}
		plan = models.QuitPlan{}
	}

	events, err := ctx.Store.ListEvents(ctx.UserID, time.Time{})
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get events: %w", err)
	}

	result := validation.New().Check(plan, events)
	if plan.UserID == "" {
		// Without a plan only event-level problems are meaningful.
		kept := result.Conflicts[:0]
		for _, c := range result.Conflicts {
			if c.Type != validation.ConflictInvalidPlan && c.Type != validation.ConflictForeignEvent {
				kept = append(kept, c)
			}
		}
		result.Conflicts = kept
	}
	return result, nil
}
