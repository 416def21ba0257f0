package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
)

type phaseService struct {
	engine
	phases   repository.PhaseRepo
	observer UseCaseObserver
}

func NewPhaseService(phases repository.PhaseRepo, uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) PhaseService {
	return &phaseService{
		engine:   newEngine(uow, cfg),
		phases:   phases,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create adds an empty phase. An empty phase weighs nothing, so the
// construction's progress is unaffected.
func (s *phaseService) Create(ctx context.Context, constructionID, name string) (*domain.Phase, error) {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:             domain.NewID(),
		ConstructionID: constructionID,
		Name:           strings.TrimSpace(name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		if _, err := store.Constructions.GetByID(ctx, constructionID); err != nil {
			return err
		}
		return store.Phases.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	if err := domain.ValidateID("phase", id); err != nil {
		return nil, err
	}
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Phase, error) {
	if err := domain.ValidateID("construction", constructionID); err != nil {
		return nil, err
	}
	return s.phases.ListByConstruction(ctx, constructionID)
}

func (s *phaseService) Rename(ctx context.Context, id, name string) (*domain.Phase, error) {
	if err := domain.ValidateID("phase", id); err != nil {
		return nil, err
	}
	var p *domain.Phase
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		p, err = store.Phases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		p.Name = strings.TrimSpace(name)
		if err := p.Validate(); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		return store.Phases.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the phase with its stages and tasks, then recomputes the
// construction that lost it.
func (s *phaseService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"phase": id}
	defer observe(ctx, s.observer, "delete-phase", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("phase", id); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		p, err := store.Phases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := store.Phases.Delete(ctx, id); err != nil {
			return err
		}
		return s.cascadeFromConstruction(ctx, store, p.ConstructionID)
	})
}

// CreateFromTemplate creates a phase under constructionID and fills it with
// a structural copy of every stage (and its tasks) found under every phase
// of the template construction. Names and budgeted costs are copied;
// progress and status start from zero. The whole copy is one transaction.
func (s *phaseService) CreateFromTemplate(ctx context.Context, constructionID string, opts TemplateCopyOptions) (result *CopyResult, err error) {
	templateID := domain.CoalesceStr(opts.TemplateID, s.cfg.TemplateID)
	fields := map[string]any{
		"construction": constructionID,
		"template":     templateID,
	}
	defer observe(ctx, s.observer, "create-phase-from-template", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("construction", constructionID); err != nil {
		return nil, err
	}
	if err = domain.ValidateID("template construction", templateID); err != nil {
		return nil, err
	}
	if constructionID == templateID {
		return nil, domain.Invalidf("construction %s is the template and cannot receive template phases", constructionID)
	}

	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		if _, err := store.Constructions.GetByID(ctx, templateID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("template %s: %w", templateID, domain.ErrTemplateNotFound)
			}
			return err
		}
		if _, err := store.Constructions.GetByID(ctx, constructionID); err != nil {
			return err
		}

		now := time.Now().UTC()
		phase := &domain.Phase{
			ID:             domain.NewID(),
			ConstructionID: constructionID,
			Name:           domain.CoalesceStr(strings.TrimSpace(opts.Name), domain.DefaultPhaseName),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := store.Phases.Create(ctx, phase); err != nil {
			return fmt.Errorf("creating phase: %w", err)
		}

		res, err := copyTemplateStructure(ctx, store, phase.ID, templateID, now)
		if err != nil {
			return err
		}
		res.Phase = phase
		res.TemplateID = templateID
		result = res

		return s.cascadeFromConstruction(ctx, store, constructionID)
	})
	if err != nil {
		return nil, err
	}
	fields["phase"] = result.Phase.ID
	fields["stage_count"] = result.StageCount
	fields["task_count"] = result.TaskCount
	return result, nil
}

// copyTemplateStructure flattens every template stage into targetPhaseID.
// Failures are reported as a *domain.CopyError; the caller's transaction
// discards whatever was written.
func copyTemplateStructure(ctx context.Context, store *repository.Store, targetPhaseID, templateID string, now time.Time) (*CopyResult, error) {
	templateStages, err := store.Stages.ListByConstruction(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading template stages: %w", err)
	}
	templateTasks, err := store.Tasks.ListByConstruction(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading template tasks: %w", err)
	}
	tasksByStage := make(map[string][]*domain.Task, len(templateStages))
	for _, t := range templateTasks {
		tasksByStage[t.StageID] = append(tasksByStage[t.StageID], t)
	}

	res := &CopyResult{}
	for _, ts := range templateStages {
		copyErr := func(err error) error {
			return &domain.CopyError{
				TemplateStage: ts.Name,
				StagesCopied:  res.StageCount,
				TasksCopied:   res.TaskCount,
				Err:           err,
			}
		}

		stage := &domain.Stage{
			ID:        domain.NewID(),
			PhaseID:   targetPhaseID,
			Name:      ts.Name,
			Progress:  0,
			Skipped:   false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.Stages.Create(ctx, stage); err != nil {
			return nil, copyErr(err)
		}

		for _, tt := range tasksByStage[ts.ID] {
			task := &domain.Task{
				ID:           domain.NewID(),
				StageID:      stage.ID,
				Name:         tt.Name,
				BudgetedCost: tt.BudgetedCost,
				Status:       domain.TaskNotStarted,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := store.Tasks.Create(ctx, task); err != nil {
				return nil, copyErr(err)
			}
			res.TaskCount++
		}
		res.StageCount++
	}
	return res, nil
}
