package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"

	"github.com/haikegani/QuitSmoke/internal/models"
)

var ErrInvalidPlan = errors.New("invalid plan")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePlan checks plan against the field rules of models.QuitPlan.
// The returned error wraps ErrInvalidPlan and names every failing field.
func ValidatePlan(plan models.QuitPlan) error {
	var problems []string

	if err := validate.Struct(plan); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}
	if plan.StartDate == (civil.Date{}) {
		problems = append(problems, "start date is required")
	} else if !plan.StartDate.IsValid() {
		problems = append(problems, fmt.Sprintf("start date %s is not a valid date", plan.StartDate))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, strings.Join(problems, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// ConflictType represents the type of data problem found in stored events.
type ConflictType string

const (
	ConflictInvalidPlan      ConflictType = "invalid_plan"
	ConflictDuplicateEventID ConflictType = "duplicate_event_id"
	ConflictMissingEventID   ConflictType = "missing_event_id"
	ConflictFutureEvent      ConflictType = "future_event"
	ConflictForeignEvent     ConflictType = "foreign_event"
)

// Conflict represents a detected problem in stored data.
type Conflict struct {
	Type        ConflictType
	Description string
	EventIDs    []string
}

// ValidationResult contains all detected conflicts.
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a user's plan and event log for consistency.
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// Check validates plan and the events logged under it.
func (v *Validator) Check(plan models.QuitPlan, events []models.UsageEvent) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if err := ValidatePlan(plan); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidPlan,
			Description: err.Error(),
		})
	}

	now := v.now()
	seen := make(map[string]int)
	for i, e := range events {
		if e.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingEventID,
				Description: fmt.Sprintf("Event #%d at %s has no ID", i+1, e.OccurredAt.Format(time.RFC3339)),
			})
			continue
		}
		seen[e.ID]++

		if e.OccurredAt.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureEvent,
				Description: fmt.Sprintf("Event %s is in the future (%s)", e.ID, e.OccurredAt.Format(time.RFC3339)),
				EventIDs:    []string{e.ID},
			})
		}
		if e.UserID != plan.UserID {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictForeignEvent,
				Description: fmt.Sprintf("Event %s belongs to user %q, not %q", e.ID, e.UserID, plan.UserID),
				EventIDs:    []string{e.ID},
			})
		}
	}

	for id, n := range seen {
		if n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEventID,
				Description: fmt.Sprintf("Event ID %s appears %d times", id, n),
				EventIDs:    []string{id},
			})
		}
	}

	return result
}
