package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTaskApply_NameOnlyDoesNotChangeWeight(t *testing.T) {
	task := &Task{Name: "Pour slab", BudgetedCost: 100, Status: TaskNotStarted}

	changed := task.Apply(TaskPatch{Name: ptr("Pour ground slab")}, time.Now())

	assert.False(t, changed)
	assert.Equal(t, "Pour ground slab", task.Name)
}

func TestTaskApply_TrimsName(t *testing.T) {
	task := &Task{Name: "Wiring", BudgetedCost: 4000, Status: TaskNotStarted}

	task.Apply(TaskPatch{Name: ptr("  Rewiring \n")}, time.Now())

	assert.Equal(t, "Rewiring", task.Name)
}

func TestTaskApply_SameValuesDoNotChangeWeight(t *testing.T) {
	task := &Task{Name: "Wiring", BudgetedCost: 4000, Status: TaskCompleted}

	changed := task.Apply(TaskPatch{
		BudgetedCost: ptr(4000.0),
		Status:       ptr(TaskCompleted),
	}, time.Now())

	assert.False(t, changed)
}

func TestTaskApply_StatusOrCostChangeWeight(t *testing.T) {
	task := &Task{Name: "Roof", BudgetedCost: 3000, Status: TaskNotStarted}
	assert.True(t, task.Apply(TaskPatch{Status: ptr(TaskCompleted)}, time.Now()))
	assert.Equal(t, TaskCompleted, task.Status)

	assert.True(t, task.Apply(TaskPatch{BudgetedCost: ptr(2500.0)}, time.Now()))
	assert.Equal(t, 2500.0, task.BudgetedCost)
}

func TestTaskIsCompleted_InProgressIsNotPartialCredit(t *testing.T) {
	assert.True(t, (&Task{Status: TaskCompleted}).IsCompleted())
	assert.False(t, (&Task{Status: TaskInProgress}).IsCompleted())
	assert.False(t, (&Task{Status: TaskNotStarted}).IsCompleted())
}

func TestValidateCost(t *testing.T) {
	assert.NoError(t, ValidateCost(0))
	assert.NoError(t, ValidateCost(7000))
	assert.NoError(t, ValidateCost(MaxBudgetedCost))
	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), MaxBudgetedCost * 2, 1e308} {
		err := ValidateCost(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestParseTaskStatus(t *testing.T) {
	cases := map[string]TaskStatus{
		"COMPLETED":   TaskCompleted,
		"completed":   TaskCompleted,
		"in-progress": TaskInProgress,
		"not started": TaskNotStarted,
	}
	for in, want := range cases {
		got, err := ParseTaskStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseTaskStatus("paused")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("task", NewID()))
	assert.ErrorIs(t, ValidateID("task", ""), ErrInvalidInput)
	assert.ErrorIs(t, ValidateID("task", "42"), ErrInvalidInput)
}

func TestTaskValidate(t *testing.T) {
	task := &Task{StageID: NewID(), Name: "Survey", BudgetedCost: 10, Status: TaskNotStarted}
	assert.NoError(t, task.Validate())

	task.Name = "  "
	assert.ErrorIs(t, task.Validate(), ErrInvalidInput)
}

func TestConstructionTreeCost(t *testing.T) {
	tree := &ConstructionTree{
		Phases: []*PhaseTree{
			{Stages: []*StageTree{
				{Tasks: []*Task{{BudgetedCost: 7000}, {BudgetedCost: 4000}}},
				{Tasks: []*Task{{BudgetedCost: 4000}}},
			}},
			{Stages: []*StageTree{{}}},
		},
	}

	assert.Equal(t, 15000.0, tree.Cost())
	assert.Equal(t, 11000.0, tree.Phases[0].Stages[0].Cost())
	assert.Equal(t, 0.0, tree.Phases[1].Cost())

	phases, stages, tasks := tree.Counts()
	assert.Equal(t, 2, phases)
	assert.Equal(t, 3, stages)
	assert.Equal(t, 3, tasks)
}
