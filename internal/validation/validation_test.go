package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/models"
)

func validPlan() models.QuitPlan {
	return models.QuitPlan{
		UserID:     "u1",
		StartLimit: 30,
		DailyStep:  1,
		MinLimit:   5,
		StartDate:  civil.Date{Year: 2024, Month: 1, Day: 1},
	}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.QuitPlan)
		wantErr bool
		field   string
	}{
		{name: "valid", mutate: func(p *models.QuitPlan) {}},
		{name: "floor equals start", mutate: func(p *models.QuitPlan) { p.MinLimit = 30 }},
		{name: "zero step", mutate: func(p *models.QuitPlan) { p.DailyStep = 0 }},
		{name: "zero start limit", mutate: func(p *models.QuitPlan) { p.StartLimit = 0; p.MinLimit = 0 }, wantErr: true, field: "StartLimit"},
		{name: "negative step", mutate: func(p *models.QuitPlan) { p.DailyStep = -1 }, wantErr: true, field: "DailyStep"},
		{name: "negative floor", mutate: func(p *models.QuitPlan) { p.MinLimit = -1 }, wantErr: true, field: "MinLimit"},
		{name: "floor above start", mutate: func(p *models.QuitPlan) { p.MinLimit = 31 }, wantErr: true, field: "MinLimit"},
		{name: "missing user", mutate: func(p *models.QuitPlan) { p.UserID = "" }, wantErr: true, field: "UserID"},
		{name: "missing start date", mutate: func(p *models.QuitPlan) { p.StartDate = civil.Date{} }, wantErr: true, field: "start date"},
		{name: "impossible start date", mutate: func(p *models.QuitPlan) { p.StartDate = civil.Date{Year: 2024, Month: 2, Day: 30} }, wantErr: true, field: "start date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)

			err := ValidatePlan(plan)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePlan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("error %v does not wrap ErrInvalidPlan", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestValidatePlan_ReportsAllProblems(t *testing.T) {
	plan := models.QuitPlan{StartLimit: 0, DailyStep: -2}
	err := ValidatePlan(plan)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"UserID", "StartLimit", "DailyStep", "start date"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestCheck(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	v := &Validator{now: func() time.Time { return now }}

	events := []models.UsageEvent{
		{ID: "a", UserID: "u1", OccurredAt: now.Add(-2 * time.Hour)},
		{ID: "a", UserID: "u1", OccurredAt: now.Add(-time.Hour)},
		{ID: "", UserID: "u1", OccurredAt: now.Add(-time.Hour)},
		{ID: "b", UserID: "u1", OccurredAt: now.Add(time.Hour)},
		{ID: "c", UserID: "someone-else", OccurredAt: now.Add(-time.Minute)},
	}

	result := v.Check(validPlan(), events)
	if !result.HasConflicts() {
		t.Fatal("expected conflicts")
	}

	counts := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		counts[c.Type]++
	}

	want := map[ConflictType]int{
		ConflictDuplicateEventID: 1,
		ConflictMissingEventID:   1,
		ConflictFutureEvent:      1,
		ConflictForeignEvent:     1,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("conflict %s count = %d, want %d", typ, counts[typ], n)
		}
	}
	if counts[ConflictInvalidPlan] != 0 {
		t.Errorf("unexpected invalid plan conflict")
	}
	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestCheck_Clean(t *testing.T) {
	v := New()
	result := v.Check(validPlan(), []models.UsageEvent{
		{ID: "a", UserID: "u1", OccurredAt: time.Now().Add(-time.Hour)},
	})
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}
