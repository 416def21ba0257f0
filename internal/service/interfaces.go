package service

import (
	"context"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/plan"
)

type ConstructionService interface {
	Create(ctx context.Context, c *domain.Construction) error
	GetByID(ctx context.Context, id string) (*domain.Construction, error)
	List(ctx context.Context) ([]*domain.Construction, error)
	Update(ctx context.Context, c *domain.Construction) error
	Delete(ctx context.Context, id string) error
	Tree(ctx context.Context, id string) (*domain.ConstructionTree, error)
}

type PhaseService interface {
	Create(ctx context.Context, constructionID, name string) (*domain.Phase, error)
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Phase, error)
	Rename(ctx context.Context, id, name string) (*domain.Phase, error)
	Delete(ctx context.Context, id string) error
	CreateFromTemplate(ctx context.Context, constructionID string, opts TemplateCopyOptions) (*CopyResult, error)
}

type StageService interface {
	Create(ctx context.Context, phaseID, name string) (*domain.Stage, error)
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Stage, error)
	Rename(ctx context.Context, id, name string) (*domain.Stage, error)
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput is the input of TaskService.Create. Status defaults to
// NOT_STARTED.
type CreateTaskInput struct {
	StageID      string
	Name         string
	BudgetedCost float64
	Status       *domain.TaskStatus
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByStage(ctx context.Context, stageID string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Remove(ctx context.Context, id string) error
}

// ProgressService exposes explicit recomputation at every level. Phase and
// construction recalculation refresh everything beneath them first.
type ProgressService interface {
	RecalculateStage(ctx context.Context, stageID string) (*domain.Stage, error)
	RecalculatePhase(ctx context.Context, phaseID string) (*domain.Phase, error)
	RecalculateConstruction(ctx context.Context, constructionID string) (*domain.Construction, error)
}

// TemplateCopyOptions tunes CreateFromTemplate. Zero values select the
// default phase name and the configured template construction.
type TemplateCopyOptions struct {
	Name       string
	TemplateID string
}

// CopyResult holds the outcome of a template copy.
type CopyResult struct {
	Phase      *domain.Phase
	TemplateID string
	StageCount int
	TaskCount  int
}

type TemplateService interface {
	// Seed materialises p as the template construction. An existing
	// template is only replaced when replace is set.
	Seed(ctx context.Context, p *plan.Plan, replace bool) (*domain.ConstructionTree, error)
	Tree(ctx context.Context) (*domain.ConstructionTree, error)
	TemplateID() string
}
