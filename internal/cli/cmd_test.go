package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/plan"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := testutil.NewTestStore(database)
	uow := testutil.NewTestUoW(database)
	cfg := service.EngineConfig{}

	return &App{
		Constructions: service.NewConstructionService(store.Constructions, uow, cfg),
		Phases:        service.NewPhaseService(store.Phases, uow, cfg),
		Stages:        service.NewStageService(store.Stages, uow, cfg),
		Tasks:         service.NewTaskService(store.Tasks, uow, cfg),
		Progress:      service.NewProgressService(uow, cfg),
		Templates:     service.NewTemplateService(uow, cfg),
		Locale:        language.BrazilianPortuguese,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedStage creates a construction with one blank phase and stage through
// the services and returns the construction and stage.
func seedStage(t *testing.T, app *App) (*domain.Construction, *domain.Stage) {
	t.Helper()
	ctx := context.Background()
	c := testutil.NewTestConstruction("Casa Jardim")
	require.NoError(t, app.Constructions.Create(ctx, c))
	p, err := app.Phases.Create(ctx, c.ID, "Estrutura")
	require.NoError(t, err)
	s, err := app.Stages.Create(ctx, p.ID, "Fundações")
	require.NoError(t, err)
	return c, s
}

// --- template ---

func TestTemplateSeed_DefaultPlan(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "template", "seed")
	require.NoError(t, err)
	assert.Contains(t, output, "6 phases, 14 stages, 23 tasks")
	assert.Contains(t, output, "100.000,00")

	_, err = executeCmd(t, app, "template", "seed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = executeCmd(t, app, "template", "seed", "--replace")
	require.NoError(t, err)
}

func TestTemplateShow_NotSeeded(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "template", "show")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
}

func TestTemplateExport_RoundTripsThroughPlanParser(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "seed")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "template", "export", "--format", "json")
	require.NoError(t, err)

	p, err := plan.Parse([]byte(output), plan.FormatJSON)
	require.NoError(t, err)
	phases, stages, tasks := p.Counts()
	assert.Equal(t, []int{6, 14, 23}, []int{phases, stages, tasks})
}

func TestTemplateExport_RejectsUnknownFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "template", "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

// --- construction ---

func TestConstructionAdd_ThenList(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "construction", "add", "--name", "Residencial Aurora", "--city", "Recife")
	require.NoError(t, err)
	assert.Contains(t, output, "Residencial Aurora")

	output, err = executeCmd(t, app, "construction", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Residencial Aurora")
	assert.Contains(t, output, "Recife")
}

func TestConstructionAdd_RequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "construction", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestConstructionList_Empty(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "construction", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No constructions found.")
}

func TestConstructionShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	c, _ := seedStage(t, app)

	output, err := executeCmd(t, app, "construction", "show", c.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "Casa Jardim")
	assert.Contains(t, output, "Estrutura")
	assert.Contains(t, output, "Fundações")
}

func TestConstructionShow_UnknownPrefix(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "construction", "show", "ffffffff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConstructionUpdate_OnlyChangedFlags(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c := testutil.NewTestConstruction("Casa", testutil.WithOwner("owner-1"))
	c.City = "Olinda"
	require.NoError(t, app.Constructions.Create(ctx, c))

	_, err := executeCmd(t, app, "construction", "update", c.ID, "--district", "Carmo")
	require.NoError(t, err)

	got, err := app.Constructions.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carmo", got.District)
	assert.Equal(t, "Olinda", got.City)
	assert.Equal(t, "owner-1", got.OwnerID)
}

func TestConstructionRemove_NonInteractiveNeedsYes(t *testing.T) {
	app := testApp(t)
	c, _ := seedStage(t, app)

	_, err := executeCmd(t, app, "construction", "rm", c.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = app.Constructions.GetByID(context.Background(), c.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "construction", "rm", c.ID, "--yes")
	require.NoError(t, err)

	_, err = app.Constructions.GetByID(context.Background(), c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConstructionRemove_InteractiveDeclined(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	c, _ := seedStage(t, app)

	output, err := executeCmd(t, app, "construction", "rm", c.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Cancelled.")
	assert.Contains(t, asked, "Casa Jardim")

	_, err = app.Constructions.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
}

func TestConstructionRecalc(t *testing.T) {
	app := testApp(t)
	c, _ := seedStage(t, app)

	output, err := executeCmd(t, app, "construction", "recalc", c.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Casa Jardim")
}

// --- phase ---

func TestPhaseNew_CopiesTemplate(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "seed")
	require.NoError(t, err)
	c, _ := seedStage(t, app)

	output, err := executeCmd(t, app, "phase", "new", c.ID[:8], "--name", "Bloco B")
	require.NoError(t, err)
	assert.Contains(t, output, "Bloco B")
	assert.Contains(t, output, "14 stages, 23 tasks")

	phases, err := app.Phases.ListByConstruction(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, phases, 2)
	assert.Equal(t, "Bloco B", phases[1].Name)
}

func TestPhaseNew_WithoutTemplate(t *testing.T) {
	app := testApp(t)
	c, _ := seedStage(t, app)

	_, err := executeCmd(t, app, "phase", "new", c.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
}

func TestPhaseNew_IntoTemplateRejected(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "seed")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "phase", "new", "template")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPhaseNew_Blank(t *testing.T) {
	app := testApp(t)
	c, _ := seedStage(t, app)

	_, err := executeCmd(t, app, "phase", "new", c.ID, "--blank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name")

	output, err := executeCmd(t, app, "phase", "new", c.ID, "--blank", "--name", "Acabamento")
	require.NoError(t, err)
	assert.Contains(t, output, "Acabamento")

	output, err = executeCmd(t, app, "phase", "list", c.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Estrutura")
	assert.Contains(t, output, "Acabamento")
}

func TestPhaseRenameAndRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c, _ := seedStage(t, app)
	phases, err := app.Phases.ListByConstruction(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, phases, 1)

	_, err = executeCmd(t, app, "phase", "rename", phases[0].ID, "Fundação e Estrutura")
	require.NoError(t, err)
	got, err := app.Phases.GetByID(ctx, phases[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Fundação e Estrutura", got.Name)

	output, err := executeCmd(t, app, "phase", "rm", phases[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Fundação e Estrutura")

	output, err = executeCmd(t, app, "phase", "list", c.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "No phases found.")
}

// --- stage and task ---

func TestTaskDone_CascadesToConstruction(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c, s := seedStage(t, app)

	_, err := executeCmd(t, app, "task", "add", s.ID, "--name", "Escavação", "--cost", "7000")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", s.ID, "--name", "Sapatas", "--cost", "4000")
	require.NoError(t, err)

	tasks, err := app.Tasks.ListByStage(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	output, err := executeCmd(t, app, "task", "done", tasks[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Escavação")

	stage, err := app.Stages.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.InDelta(t, 63.64, stage.Progress, 0.001)

	got, err := app.Constructions.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 63.64, got.Progress, 0.001)

	output, err = executeCmd(t, app, "task", "list", s.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "11.000,00")
}

func TestTaskAdd_WithStatus(t *testing.T) {
	app := testApp(t)
	_, s := seedStage(t, app)

	_, err := executeCmd(t, app, "task", "add", s.ID, "--name", "Sapatas", "--cost", "4000", "--status", "in-progress")
	require.NoError(t, err)

	tasks, err := app.Tasks.ListByStage(context.Background(), s.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskInProgress, tasks[0].Status)

	_, err = executeCmd(t, app, "task", "add", s.ID, "--name", "Vigas", "--status", "paused")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTaskAdd_RejectsNegativeCost(t *testing.T) {
	app := testApp(t)
	_, s := seedStage(t, app)

	_, err := executeCmd(t, app, "task", "add", s.ID, "--name", "Vigas", "--cost=-10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTaskUpdate(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_, s := seedStage(t, app)
	task, err := app.Tasks.Create(ctx, service.CreateTaskInput{StageID: s.ID, Name: "Vigas", BudgetedCost: 1000})
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "update", task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = executeCmd(t, app, "task", "update", task.ID, "--cost", "2500", "--status", "completed")
	require.NoError(t, err)

	got, err := app.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, got.BudgetedCost)
	assert.Equal(t, domain.TaskCompleted, got.Status)

	stage, err := app.Stages.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stage.Progress)
}

func TestTaskRemove_RecomputesStage(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_, s := seedStage(t, app)
	done := domain.TaskCompleted
	_, err := app.Tasks.Create(ctx, service.CreateTaskInput{StageID: s.ID, Name: "Escavação", BudgetedCost: 1000, Status: &done})
	require.NoError(t, err)
	open, err := app.Tasks.Create(ctx, service.CreateTaskInput{StageID: s.ID, Name: "Sapatas", BudgetedCost: 3000})
	require.NoError(t, err)

	_, err = executeCmd(t, app, "task", "rm", open.ID)
	require.NoError(t, err)

	stage, err := app.Stages.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stage.Progress)
}

func TestStageCommands(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	c, s := seedStage(t, app)
	phases, err := app.Phases.ListByConstruction(ctx, c.ID)
	require.NoError(t, err)

	output, err := executeCmd(t, app, "stage", "add", phases[0].ID, "--name", "Lajes")
	require.NoError(t, err)
	assert.Contains(t, output, "Lajes")

	output, err = executeCmd(t, app, "stage", "list", phases[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Fundações")
	assert.Contains(t, output, "Lajes")

	_, err = executeCmd(t, app, "stage", "rename", s.ID, "Fundação")
	require.NoError(t, err)

	output, err = executeCmd(t, app, "stage", "recalc", s.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Fundação")

	_, err = executeCmd(t, app, "stage", "rm", s.ID)
	require.NoError(t, err)
	_, err = app.Stages.GetByID(ctx, s.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStageAdd_UnknownPhase(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "stage", "add", domain.NewID(), "--name", "Lajes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
