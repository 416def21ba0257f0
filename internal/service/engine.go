package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/progress"
	"github.com/alexanderramin/canteiro/internal/repository"
)

// DefaultTemplateID is the well-known id of the template construction.
const DefaultTemplateID = "00000000-0000-0000-0000-000000000001"

// DefaultConflictRetries is how many times a transaction that hit a stale
// aggregate version is replayed before ErrConflict reaches the caller.
const DefaultConflictRetries = 3

// EngineConfig carries the settings shared by the services that mutate the
// hierarchy.
type EngineConfig struct {
	TemplateID      string
	Cascade         domain.CascadeMode
	ConflictRetries int
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.TemplateID == "" {
		c.TemplateID = DefaultTemplateID
	}
	if c.Cascade == "" {
		c.Cascade = domain.CascadeFull
	}
	if c.ConflictRetries <= 0 {
		c.ConflictRetries = DefaultConflictRetries
	}
	return c
}

// engine runs transactional work against the store and owns the rollup
// steps every service shares.
type engine struct {
	uow db.UnitOfWork
	cfg EngineConfig
}

func newEngine(uow db.UnitOfWork, cfg EngineConfig) engine {
	return engine{uow: uow, cfg: cfg.withDefaults()}
}

// inTx runs fn in one transaction with tx-scoped repositories, replaying
// the whole transaction when an optimistic version check fails.
func (e engine) inTx(ctx context.Context, fn func(ctx context.Context, store *repository.Store) error) error {
	var err error
	for attempt := 0; attempt <= e.cfg.ConflictRetries; attempt++ {
		err = e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return fn(ctx, repository.NewStore(tx))
		})
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", e.cfg.ConflictRetries+1, err)
}

// recalcStage recomputes one stage from its tasks and persists it.
func recalcStage(ctx context.Context, store *repository.Store, stageID string) (*domain.Stage, error) {
	stage, err := store.Stages.GetByID(ctx, stageID)
	if err != nil {
		return nil, err
	}
	tasks, err := store.Tasks.ListByStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if pct := progress.Stage(tasks); pct != stage.Progress {
		stage.Progress = pct
		if err := store.Stages.UpdateProgress(ctx, stage); err != nil {
			return nil, err
		}
	}
	return stage, nil
}

// recalcPhase refreshes every stage of the phase and then the phase.
func recalcPhase(ctx context.Context, store *repository.Store, phaseID string) (*domain.Phase, error) {
	pt, err := store.LoadPhaseTree(ctx, phaseID)
	if err != nil {
		return nil, err
	}
	var ch progress.Changes
	progress.RollupPhase(pt, &ch)
	if err := persistChanges(ctx, store, ch, nil); err != nil {
		return nil, err
	}
	return pt.Phase, nil
}

// recalcConstruction refreshes the whole tree bottom-up.
func recalcConstruction(ctx context.Context, store *repository.Store, constructionID string) (*domain.Construction, error) {
	tree, err := store.LoadTree(ctx, constructionID)
	if err != nil {
		return nil, err
	}
	ch := progress.Rollup(tree)
	if err := persistChanges(ctx, store, ch, tree.Construction); err != nil {
		return nil, err
	}
	return tree.Construction, nil
}

func persistChanges(ctx context.Context, store *repository.Store, ch progress.Changes, c *domain.Construction) error {
	for _, s := range ch.Stages {
		if err := store.Stages.UpdateProgress(ctx, s); err != nil {
			return err
		}
	}
	for _, p := range ch.Phases {
		if err := store.Phases.UpdateProgress(ctx, p); err != nil {
			return err
		}
	}
	if ch.Construction && c != nil {
		if err := store.Constructions.UpdateProgress(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// owningConstruction resolves the construction a stage belongs to.
func owningConstruction(ctx context.Context, store *repository.Store, stage *domain.Stage) (string, error) {
	phase, err := store.Phases.GetByID(ctx, stage.PhaseID)
	if err != nil {
		return "", err
	}
	return phase.ConstructionID, nil
}

// cascadeFromStage propagates a task-level change upward according to the
// configured cascade mode. The template construction is a copy source and
// never progresses past its stages.
func (e engine) cascadeFromStage(ctx context.Context, store *repository.Store, stageID string) error {
	stage, err := recalcStage(ctx, store, stageID)
	if err != nil {
		return fmt.Errorf("recalculating stage: %w", err)
	}
	if e.cfg.Cascade != domain.CascadeFull {
		return nil
	}
	constructionID, err := owningConstruction(ctx, store, stage)
	if err != nil {
		return err
	}
	return e.cascadeFromConstruction(ctx, store, constructionID)
}

// cascadeFromConstruction recomputes a construction after one of its
// phases or stages changed shape, when running in full cascade mode.
func (e engine) cascadeFromConstruction(ctx context.Context, store *repository.Store, constructionID string) error {
	if e.cfg.Cascade != domain.CascadeFull || constructionID == e.cfg.TemplateID {
		return nil
	}
	if _, err := recalcConstruction(ctx, store, constructionID); err != nil {
		return fmt.Errorf("recalculating construction: %w", err)
	}
	return nil
}
