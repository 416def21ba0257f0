package service

import (
	"context"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
)

type progressService struct {
	engine
	observer UseCaseObserver
}

func NewProgressService(uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) ProgressService {
	return &progressService{
		engine:   newEngine(uow, cfg),
		observer: useCaseObserverOrNoop(observers),
	}
}

// RecalculateStage recomputes a single stage. It does not cascade: callers
// batching many task edits recalculate the construction once at the end.
func (s *progressService) RecalculateStage(ctx context.Context, stageID string) (stage *domain.Stage, err error) {
	fields := map[string]any{"stage": stageID}
	defer observe(ctx, s.observer, "recalculate-stage", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("stage", stageID); err != nil {
		return nil, err
	}
	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		stage, err = recalcStage(ctx, store, stageID)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["progress"] = stage.Progress
	return stage, nil
}

func (s *progressService) RecalculatePhase(ctx context.Context, phaseID string) (phase *domain.Phase, err error) {
	fields := map[string]any{"phase": phaseID}
	defer observe(ctx, s.observer, "recalculate-phase", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("phase", phaseID); err != nil {
		return nil, err
	}
	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		phase, err = recalcPhase(ctx, store, phaseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["progress"] = phase.Progress
	return phase, nil
}

func (s *progressService) RecalculateConstruction(ctx context.Context, constructionID string) (c *domain.Construction, err error) {
	fields := map[string]any{"construction": constructionID}
	defer observe(ctx, s.observer, "recalculate-construction", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("construction", constructionID); err != nil {
		return nil, err
	}
	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		c, err = recalcConstruction(ctx, store, constructionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["progress"] = c.Progress
	return c, nil
}
