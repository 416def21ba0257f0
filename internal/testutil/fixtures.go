package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/stretchr/testify/require"
)

// Construction options
type ConstructionOption func(*domain.Construction)

func WithOwner(id string) ConstructionOption {
	return func(c *domain.Construction) {
		c.OwnerID = id
	}
}

func WithConstructionID(id string) ConstructionOption {
	return func(c *domain.Construction) {
		c.ID = id
	}
}

func NewTestConstruction(name string, opts ...ConstructionOption) *domain.Construction {
	now := time.Now().UTC()
	c := &domain.Construction{
		ID:         domain.NewID(),
		Name:       name,
		Address:    "Rua das Flores, 100",
		PostalCode: "01000-000",
		City:       "São Paulo",
		District:   "Centro",
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestPhase(constructionID, name string) *domain.Phase {
	now := time.Now().UTC()
	return &domain.Phase{
		ID:             domain.NewID(),
		ConstructionID: constructionID,
		Name:           name,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Stage options
type StageOption func(*domain.Stage)

func WithStageProgress(p float64) StageOption {
	return func(s *domain.Stage) {
		s.Progress = p
	}
}

func NewTestStage(phaseID, name string, opts ...StageOption) *domain.Stage {
	now := time.Now().UTC()
	s := &domain.Stage{
		ID:        domain.NewID(),
		PhaseID:   phaseID,
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func Completed() TaskOption {
	return WithTaskStatus(domain.TaskCompleted)
}

func NewTestTask(stageID, name string, cost float64, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:           domain.NewID(),
		StageID:      stageID,
		Name:         name,
		BudgetedCost: cost,
		Status:       domain.TaskNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TreeSpec describes a hierarchy to insert with SeedTree. Each stage maps
// to the task costs it holds; completed tasks are listed in Done by index.
type TreeSpec struct {
	Phases []PhaseSpec
}

type PhaseSpec struct {
	Name   string
	Stages []StageSpec
}

type StageSpec struct {
	Name  string
	Costs []float64
	Done  []int
}

// Seeded holds the rows SeedTree inserted, in spec order.
type Seeded struct {
	Construction *domain.Construction
	Phases       []*domain.Phase
	Stages       []*domain.Stage
	Tasks        []*domain.Task
}

// SeedTree inserts a construction and the hierarchy described by spec
// directly through the repositories, bypassing any progress cascade.
func SeedTree(t *testing.T, store *repository.Store, c *domain.Construction, spec TreeSpec) *Seeded {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Constructions.Create(ctx, c))

	out := &Seeded{Construction: c}
	for _, ps := range spec.Phases {
		p := NewTestPhase(c.ID, ps.Name)
		require.NoError(t, store.Phases.Create(ctx, p))
		out.Phases = append(out.Phases, p)
		for _, ss := range ps.Stages {
			s := NewTestStage(p.ID, ss.Name)
			require.NoError(t, store.Stages.Create(ctx, s))
			out.Stages = append(out.Stages, s)
			done := make(map[int]bool, len(ss.Done))
			for _, i := range ss.Done {
				done[i] = true
			}
			for i, cost := range ss.Costs {
				var opts []TaskOption
				if done[i] {
					opts = append(opts, Completed())
				}
				task := NewTestTask(s.ID, ss.Name+" task", cost, opts...)
				require.NoError(t, store.Tasks.Create(ctx, task))
				out.Tasks = append(out.Tasks, task)
			}
		}
	}
	return out
}
