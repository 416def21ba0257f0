package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/plan"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateSeed_DefaultPlan(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()

	tree, err := svc.template.Seed(ctx, plan.Default(), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplateID, tree.Construction.ID)

	stored, err := svc.template.Tree(ctx)
	require.NoError(t, err)
	phases, stages, tasks := stored.Counts()
	assert.Equal(t, 6, phases)
	assert.Equal(t, 14, stages)
	assert.Equal(t, 23, tasks)
	assert.Equal(t, "MODELO PADRÃO (Não Excluir)", stored.Construction.Name)
	assert.Equal(t, "Projetos Arquitetônicos e Estruturais", stored.Phases[0].Stages[0].Stage.Name)
}

func TestTemplateSeed_RefusesToOverwrite(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	_, err := svc.template.Seed(ctx, plan.Default(), false)
	require.NoError(t, err)

	_, err = svc.template.Seed(ctx, plan.Default(), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateSeed_Replace(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()
	_, err := svc.template.Seed(ctx, plan.Default(), false)
	require.NoError(t, err)

	small := &plan.Plan{
		Construction: plan.ConstructionSpec{Name: "Modelo reduzido"},
		Phases: []plan.PhaseSpec{{
			Name:   "Única",
			Stages: []plan.StageSpec{{Name: "Etapa", Tasks: []plan.TaskSpec{{Name: "Tarefa"}}}},
		}},
	}
	_, err = svc.template.Seed(ctx, small, true)
	require.NoError(t, err)

	tree, err := svc.template.Tree(ctx)
	require.NoError(t, err)
	phases, stages, tasks := tree.Counts()
	assert.Equal(t, []int{1, 1, 1}, []int{phases, stages, tasks})
	assert.Equal(t, "Modelo reduzido", tree.Construction.Name)
	assert.Equal(t, 0.0, tree.Phases[0].Stages[0].Tasks[0].BudgetedCost)
}

func TestTemplateSeed_InvalidPlan(t *testing.T) {
	svc := newServices(t, EngineConfig{})
	ctx := context.Background()

	_, err := svc.template.Seed(ctx, nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.template.Seed(ctx, &plan.Plan{Construction: plan.ConstructionSpec{Name: " "}}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.template.Tree(ctx)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestTemplateSeed_CustomTemplateID(t *testing.T) {
	id := domain.NewID()
	svc := newServices(t, EngineConfig{TemplateID: id})
	ctx := context.Background()

	_, err := svc.template.Seed(ctx, plan.Default(), false)
	require.NoError(t, err)
	assert.Equal(t, id, svc.template.TemplateID())

	target := svc.seed(t, testutil.TreeSpec{})
	res, err := svc.phases.CreateFromTemplate(ctx, target.Construction.ID, TemplateCopyOptions{})
	require.NoError(t, err)
	assert.Equal(t, id, res.TemplateID)
	assert.Equal(t, 14, res.StageCount)
}
