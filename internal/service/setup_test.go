package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/require"
)

// services wires every service over one in-memory database.
type services struct {
	db            *sql.DB
	store         *repository.Store
	uow           db.UnitOfWork
	cfg           EngineConfig
	constructions ConstructionService
	phases        PhaseService
	stages        StageService
	tasks         TaskService
	progress      ProgressService
	template      TemplateService
}

func newServices(t *testing.T, cfg EngineConfig) *services {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newServicesWithUoW(t, database, testutil.NewTestUoW(database), cfg)
}

func newServicesWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork, cfg EngineConfig) *services {
	t.Helper()
	store := testutil.NewTestStore(database)
	return &services{
		db:            database,
		store:         store,
		uow:           uow,
		cfg:           cfg.withDefaults(),
		constructions: NewConstructionService(store.Constructions, uow, cfg),
		phases:        NewPhaseService(store.Phases, uow, cfg),
		stages:        NewStageService(store.Stages, uow, cfg),
		tasks:         NewTaskService(store.Tasks, uow, cfg),
		progress:      NewProgressService(uow, cfg),
		template:      NewTemplateService(uow, cfg),
	}
}

func (s *services) seed(t *testing.T, spec testutil.TreeSpec, opts ...testutil.ConstructionOption) *testutil.Seeded {
	t.Helper()
	return testutil.SeedTree(t, s.store, testutil.NewTestConstruction("Casa", opts...), spec)
}

func (s *services) seedTemplate(t *testing.T, spec testutil.TreeSpec) *testutil.Seeded {
	t.Helper()
	return s.seed(t, spec, testutil.WithConstructionID(s.cfg.TemplateID))
}

func (s *services) stage(t *testing.T, id string) *domain.Stage {
	t.Helper()
	st, err := s.store.Stages.GetByID(context.Background(), id)
	require.NoError(t, err)
	return st
}

func (s *services) phase(t *testing.T, id string) *domain.Phase {
	t.Helper()
	p, err := s.store.Phases.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (s *services) construction(t *testing.T, id string) *domain.Construction {
	t.Helper()
	c, err := s.store.Constructions.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string { return &s }
