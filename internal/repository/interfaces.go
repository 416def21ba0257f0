package repository

import (
	"context"

	"github.com/alexanderramin/canteiro/internal/domain"
)

type ConstructionRepo interface {
	Create(ctx context.Context, c *domain.Construction) error
	GetByID(ctx context.Context, id string) (*domain.Construction, error)
	List(ctx context.Context) ([]*domain.Construction, error)
	Update(ctx context.Context, c *domain.Construction) error
	UpdateProgress(ctx context.Context, c *domain.Construction) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	UpdateProgress(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type StageRepo interface {
	Create(ctx context.Context, s *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Stage, error)
	// ListByConstruction returns every stage of every phase of the
	// construction, ordered by phase then stage insertion order.
	ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Stage, error)
	Update(ctx context.Context, s *domain.Stage) error
	UpdateProgress(ctx context.Context, s *domain.Stage) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByStage(ctx context.Context, stageID string) ([]*domain.Task, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Task, error)
	ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}
