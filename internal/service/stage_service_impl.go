package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
)

type stageService struct {
	engine
	stages   repository.StageRepo
	observer UseCaseObserver
}

func NewStageService(stages repository.StageRepo, uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) StageService {
	return &stageService{
		engine:   newEngine(uow, cfg),
		stages:   stages,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *stageService) Create(ctx context.Context, phaseID, name string) (*domain.Stage, error) {
	now := time.Now().UTC()
	st := &domain.Stage{
		ID:        domain.NewID(),
		PhaseID:   phaseID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		if _, err := store.Phases.GetByID(ctx, phaseID); err != nil {
			return err
		}
		return store.Stages.Create(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *stageService) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	if err := domain.ValidateID("stage", id); err != nil {
		return nil, err
	}
	return s.stages.GetByID(ctx, id)
}

func (s *stageService) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Stage, error) {
	if err := domain.ValidateID("phase", phaseID); err != nil {
		return nil, err
	}
	return s.stages.ListByPhase(ctx, phaseID)
}

func (s *stageService) Rename(ctx context.Context, id, name string) (*domain.Stage, error) {
	if err := domain.ValidateID("stage", id); err != nil {
		return nil, err
	}
	var st *domain.Stage
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		st, err = store.Stages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		st.Name = strings.TrimSpace(name)
		if err := st.Validate(); err != nil {
			return err
		}
		st.UpdatedAt = time.Now().UTC()
		return store.Stages.Update(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes the stage and its tasks. The owning construction is
// recomputed because the phase lost their weight.
func (s *stageService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"stage": id}
	defer observe(ctx, s.observer, "delete-stage", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("stage", id); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		st, err := store.Stages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		constructionID, err := owningConstruction(ctx, store, st)
		if err != nil {
			return err
		}
		if err := store.Stages.Delete(ctx, id); err != nil {
			return err
		}
		return s.cascadeFromConstruction(ctx, store, constructionID)
	})
}
