package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/plan"
	"github.com/alexanderramin/canteiro/internal/repository"
)

type templateService struct {
	engine
	observer UseCaseObserver
}

func NewTemplateService(uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) TemplateService {
	return &templateService{
		engine:   newEngine(uow, cfg),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) TemplateID() string { return s.cfg.TemplateID }

// Seed writes p as the template construction in one transaction. With
// replace, an existing template and everything beneath it is removed first.
func (s *templateService) Seed(ctx context.Context, p *plan.Plan, replace bool) (tree *domain.ConstructionTree, err error) {
	fields := map[string]any{
		"template": s.cfg.TemplateID,
		"replace":  replace,
	}
	defer observe(ctx, s.observer, "seed-template", time.Now().UTC(), fields, &err)

	if p == nil {
		return nil, domain.Invalidf("plan is required")
	}
	if errs := plan.Validate(p); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	tree = plan.ToTree(p, s.cfg.TemplateID)
	phases, stages, tasks := tree.Counts()
	fields["phase_count"] = phases
	fields["stage_count"] = stages
	fields["task_count"] = tasks

	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		_, err := store.Constructions.GetByID(ctx, s.cfg.TemplateID)
		switch {
		case err == nil && !replace:
			return domain.Invalidf("template %s is already seeded (replace it explicitly)", s.cfg.TemplateID)
		case err == nil:
			if err := store.Constructions.Delete(ctx, s.cfg.TemplateID); err != nil {
				return fmt.Errorf("removing previous template: %w", err)
			}
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return insertTree(ctx, store, tree)
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *templateService) Tree(ctx context.Context) (*domain.ConstructionTree, error) {
	var tree *domain.ConstructionTree
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		tree, err = store.LoadTree(ctx, s.cfg.TemplateID)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("template %s: %w", s.cfg.TemplateID, domain.ErrTemplateNotFound)
	}
	return tree, err
}

func insertTree(ctx context.Context, store *repository.Store, tree *domain.ConstructionTree) error {
	if err := store.Constructions.Create(ctx, tree.Construction); err != nil {
		return fmt.Errorf("creating construction: %w", err)
	}
	for _, pt := range tree.Phases {
		if err := store.Phases.Create(ctx, pt.Phase); err != nil {
			return fmt.Errorf("creating phase %q: %w", pt.Phase.Name, err)
		}
		for _, node := range pt.Stages {
			if err := store.Stages.Create(ctx, node.Stage); err != nil {
				return fmt.Errorf("creating stage %q: %w", node.Stage.Name, err)
			}
			for _, t := range node.Tasks {
				if err := store.Tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("creating task %q: %w", t.Name, err)
				}
			}
		}
	}
	return nil
}
