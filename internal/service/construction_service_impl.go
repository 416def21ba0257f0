package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
)

type constructionService struct {
	engine
	constructions repository.ConstructionRepo
	observer      UseCaseObserver
}

func NewConstructionService(constructions repository.ConstructionRepo, uow db.UnitOfWork, cfg EngineConfig, observers ...UseCaseObserver) ConstructionService {
	return &constructionService{
		engine:        newEngine(uow, cfg),
		constructions: constructions,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *constructionService) Create(ctx context.Context, c *domain.Construction) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = domain.NewID()
	} else if err := domain.ValidateID("construction", c.ID); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	c.Progress = 0
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.constructions.Create(ctx, c)
}

func (s *constructionService) GetByID(ctx context.Context, id string) (*domain.Construction, error) {
	if err := domain.ValidateID("construction", id); err != nil {
		return nil, err
	}
	return s.constructions.GetByID(ctx, id)
}

func (s *constructionService) List(ctx context.Context) ([]*domain.Construction, error) {
	return s.constructions.List(ctx)
}

// Update rewrites the descriptive fields. Progress is owned by the engine
// and is left as stored.
func (s *constructionService) Update(ctx context.Context, c *domain.Construction) error {
	if err := domain.ValidateID("construction", c.ID); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.constructions.Update(ctx, c)
}

func (s *constructionService) Delete(ctx context.Context, id string) (err error) {
	fields := map[string]any{"construction": id}
	defer observe(ctx, s.observer, "delete-construction", time.Now().UTC(), fields, &err)

	if err = domain.ValidateID("construction", id); err != nil {
		return err
	}
	return s.constructions.Delete(ctx, id)
}

func (s *constructionService) Tree(ctx context.Context, id string) (*domain.ConstructionTree, error) {
	if err := domain.ValidateID("construction", id); err != nil {
		return nil, err
	}
	var tree *domain.ConstructionTree
	err := s.inTx(ctx, func(ctx context.Context, store *repository.Store) error {
		var err error
		tree, err = store.LoadTree(ctx, id)
		return err
	})
	return tree, err
}
