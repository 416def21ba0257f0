package domain

import (
	"math"
	"strings"
	"time"
)

type Task struct {
	ID           string
	StageID      string
	Name         string
	BudgetedCost float64
	Status       TaskStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Name         *string
	BudgetedCost *float64
	Status       *TaskStatus
}

// IsCompleted reports whether the task counts as done for weighting.
// IN_PROGRESS is not partial credit.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalidf("task name is required")
	}
	if err := ValidateCost(t.BudgetedCost); err != nil {
		return err
	}
	if !ValidTaskStatuses[t.Status] {
		return invalidf("task status %q is not valid", t.Status)
	}
	return ValidateID("stage", t.StageID)
}

// MaxBudgetedCost bounds a single task's budgeted cost so that summing a
// stage, phase or construction stays finite.
const MaxBudgetedCost = 1e15

// ValidateCost rejects negative, NaN, infinite and oversized budgeted costs.
func ValidateCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return invalidf("budgeted cost must be a finite number")
	}
	if cost < 0 {
		return invalidf("budgeted cost %.2f must not be negative", cost)
	}
	if cost > MaxBudgetedCost {
		return invalidf("budgeted cost %g exceeds the maximum of %g", cost, MaxBudgetedCost)
	}
	return nil
}

// Validate checks the fields a patch would set.
func (p TaskPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalidf("task name must not be empty")
	}
	if p.BudgetedCost != nil {
		if err := ValidateCost(*p.BudgetedCost); err != nil {
			return err
		}
	}
	if p.Status != nil && !ValidTaskStatuses[*p.Status] {
		return invalidf("task status %q is not valid", *p.Status)
	}
	return nil
}

// Apply writes the patch onto t and reports whether a field that feeds the
// progress weighting (status or budgeted cost) actually changed value.
func (t *Task) Apply(p TaskPatch, now time.Time) (weightChanged bool) {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.BudgetedCost != nil && *p.BudgetedCost != t.BudgetedCost {
		t.BudgetedCost = *p.BudgetedCost
		weightChanged = true
	}
	if p.Status != nil && *p.Status != t.Status {
		t.Status = *p.Status
		weightChanged = true
	}
	t.UpdatedAt = now
	return weightChanged
}

func (t *Task) DisplayID() string { return shortID(t.ID) }
