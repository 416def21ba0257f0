package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateStage_CostWeighted(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{
		Name:   "Estrutura",
		Stages: []testutil.StageSpec{{Name: "Fundações", Costs: []float64{7000, 4000}, Done: []int{0}}},
	}}})

	stage, err := svc.progress.RecalculateStage(ctx, seeded.Stages[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 63.64, stage.Progress)
	assert.Equal(t, 63.64, svc.stage(t, stage.ID).Progress)

	// A stage recalc never moves the phase.
	assert.Equal(t, 0.0, svc.phase(t, seeded.Phases[0].ID).Progress)
}

func TestRecalculateStage_NoTasksIsZero(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{
		Name:   "P",
		Stages: []testutil.StageSpec{{Name: "Vazia"}},
	}}})
	// Stale stored value is overwritten.
	st := svc.stage(t, seeded.Stages[0].ID)
	st.Progress = 40
	require.NoError(t, svc.store.Stages.UpdateProgress(ctx, st))

	stage, err := svc.progress.RecalculateStage(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stage.Progress)
}

func TestRecalculateStage_Errors(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()

	_, err := svc.progress.RecalculateStage(ctx, domain.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.progress.RecalculateStage(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecalculatePhase_RefreshesStagesFirst(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{
		Name: "Planejamento",
		Stages: []testutil.StageSpec{
			{Name: "Projetos", Costs: []float64{7000, 4000}, Done: []int{0}},
			{Name: "Alvará", Costs: []float64{4000}},
		},
	}}})

	phase, err := svc.progress.RecalculatePhase(ctx, seeded.Phases[0].ID)
	require.NoError(t, err)
	// 11000 * 0.6364 / 15000
	assert.Equal(t, 46.67, phase.Progress)
	assert.Equal(t, 63.64, svc.stage(t, seeded.Stages[0].ID).Progress)
	assert.Equal(t, 0.0, svc.stage(t, seeded.Stages[1].ID).Progress)

	_, err = svc.progress.RecalculatePhase(ctx, domain.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculatePhase_NoStagesIsZero(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{Name: "Vazia"}}})

	phase, err := svc.progress.RecalculatePhase(context.Background(), seeded.Phases[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, phase.Progress)
}

func TestRecalculateConstruction_WeightsPhasesByCost(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{
		{Name: "Feita", Stages: []testutil.StageSpec{{Name: "S1", Costs: []float64{1000}, Done: []int{0}}}},
		{Name: "Pendente", Stages: []testutil.StageSpec{{Name: "S2", Costs: []float64{3000}}}},
	}})

	c, err := svc.progress.RecalculateConstruction(ctx, seeded.Construction.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, c.Progress)
	assert.Equal(t, 100.0, svc.phase(t, seeded.Phases[0].ID).Progress)
	assert.Equal(t, 0.0, svc.phase(t, seeded.Phases[1].ID).Progress)
	assert.Equal(t, 100.0, svc.stage(t, seeded.Stages[0].ID).Progress)
}

func TestRecalculateConstruction_Idempotent(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	seeded := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{
		Name:   "P",
		Stages: []testutil.StageSpec{{Name: "S", Costs: []float64{5000, 3000, 3000}, Done: []int{0, 2}}},
	}}})

	first, err := svc.progress.RecalculateConstruction(ctx, seeded.Construction.ID)
	require.NoError(t, err)
	assert.Equal(t, 72.73, first.Progress)
	stageVersion := svc.stage(t, seeded.Stages[0].ID).Version

	second, err := svc.progress.RecalculateConstruction(ctx, seeded.Construction.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Progress, second.Progress)
	assert.Equal(t, first.Version, second.Version, "unchanged values are not rewritten")
	assert.Equal(t, stageVersion, svc.stage(t, seeded.Stages[0].ID).Version)
}

func TestRecalculateConstruction_EmptyAndZeroCost(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()

	empty := svc.seed(t, testutil.TreeSpec{})
	c, err := svc.progress.RecalculateConstruction(ctx, empty.Construction.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Progress)

	free := svc.seed(t, testutil.TreeSpec{Phases: []testutil.PhaseSpec{{
		Name:   "P",
		Stages: []testutil.StageSpec{{Name: "S", Costs: []float64{0, 0}, Done: []int{0, 1}}},
	}}})
	c, err = svc.progress.RecalculateConstruction(ctx, free.Construction.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Progress)

	_, err = svc.progress.RecalculateConstruction(ctx, domain.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
