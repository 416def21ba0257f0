package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
)

// taskService is the cascade trigger: every task write and the progress
// recomputation it causes commit or roll back together.
type taskService struct {
	engine
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) TaskService {
	return &taskService{
		engine:   newEngine(uow, cfg),
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (task *domain.Task, err error) {
	fields := map[string]any{"stage": in.StageID}
	defer observe(ctx, s.observer, "create-task", time.Now().UTC(), fields, &err)

	now := time.Now().UTC()
	task = &domain.Task{
		ID:           domain.NewID(),
		StageID:      in.StageID,
		Name:         strings.TrimSpace(in.Name),
		BudgetedCost: in.BudgetedCost,
		Status:       domain.TaskNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if err = task.Validate(); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		stage, err := store.Stages.GetByID(ctx, task.StageID)
		if err != nil {
			return err
		}
		if err := s.guardTemplate(ctx, store, stage, task.Status); err != nil {
			return err
		}
		if err := store.Tasks.Create(ctx, task); err != nil {
			return err
		}
		return s.cascadeFromStage(ctx, store, task.StageID)
	})
	if err != nil {
		return nil, err
	}
	fields["task"] = task.ID
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := domain.ValidateID("task", id); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByStage(ctx context.Context, stageID string) ([]*domain.Task, error) {
	if err := domain.ValidateID("stage", stageID); err != nil {
		return nil, err
	}
	return s.tasks.ListByStage(ctx, stageID)
}

// Update applies patch and recomputes progress only when the task's status
// or budgeted cost actually changed value.
func (s *taskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (task *domain.Task, err error) {
	fields := map[string]any{"task": id}
	defer observe(ctx, s.observer, "update-task", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("task", id); err != nil {
		return nil, err
	}
	if err = patch.Validate(); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		task, err = store.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		weightChanged := task.Apply(patch, time.Now().UTC())
		fields["recomputed"] = weightChanged
		if patch.Status != nil {
			stage, err := store.Stages.GetByID(ctx, task.StageID)
			if err != nil {
				return err
			}
			if err := s.guardTemplate(ctx, store, stage, task.Status); err != nil {
				return err
			}
		}
		if err := store.Tasks.Update(ctx, task); err != nil {
			return err
		}
		if !weightChanged {
			return nil
		}
		return s.cascadeFromStage(ctx, store, task.StageID)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Remove deletes the task and always recomputes its stage from the tasks
// that remain.
func (s *taskService) Remove(ctx context.Context, id string) (err error) {
	fields := map[string]any{"task": id}
	defer observe(ctx, s.observer, "remove-task", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("task", id); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		task, err := store.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["stage"] = task.StageID
		if err := store.Tasks.Delete(ctx, id); err != nil {
			return err
		}
		return s.cascadeFromStage(ctx, store, task.StageID)
	})
}

// guardTemplate keeps tasks of the template construction unprogressed.
func (s *taskService) guardTemplate(ctx context.Context, store *repository.Store, stage *domain.Stage, status domain.TaskStatus) error {
	if status == domain.TaskNotStarted {
		return nil
	}
	constructionID, err := owningConstruction(ctx, store, stage)
	if err != nil {
		return err
	}
	if constructionID == s.cfg.TemplateID {
		return domain.Invalidf("tasks of the template construction cannot be progressed (status %s)", status)
	}
	return nil
}
