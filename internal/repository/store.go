package repository

import (
	"context"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

// Store bundles the four repositories over one DBTX, so a service can
// scope all of them to the same transaction.
type Store struct {
	Constructions ConstructionRepo
	Phases        PhaseRepo
	Stages        StageRepo
	Tasks         TaskRepo
}

// NewStore builds SQLite repositories over q (a *sql.DB or a *sql.Tx).
func NewStore(q db.DBTX) *Store {
	return &Store{
		Constructions: NewSQLiteConstructionRepo(q),
		Phases:        NewSQLitePhaseRepo(q),
		Stages:        NewSQLiteStageRepo(q),
		Tasks:         NewSQLiteTaskRepo(q),
	}
}

// LoadTree reads a construction and its whole hierarchy with one query per
// level.
func (s *Store) LoadTree(ctx context.Context, constructionID string) (*domain.ConstructionTree, error) {
	c, err := s.Constructions.GetByID(ctx, constructionID)
	if err != nil {
		return nil, err
	}
	phases, err := s.Phases.ListByConstruction(ctx, constructionID)
	if err != nil {
		return nil, err
	}
	stages, err := s.Stages.ListByConstruction(ctx, constructionID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.Tasks.ListByConstruction(ctx, constructionID)
	if err != nil {
		return nil, err
	}

	tree := &domain.ConstructionTree{Construction: c}
	phaseByID := make(map[string]*domain.PhaseTree, len(phases))
	for _, p := range phases {
		pt := &domain.PhaseTree{Phase: p}
		phaseByID[p.ID] = pt
		tree.Phases = append(tree.Phases, pt)
	}
	stageByID := make(map[string]*domain.StageTree, len(stages))
	for _, st := range stages {
		node := &domain.StageTree{Stage: st}
		stageByID[st.ID] = node
		if pt, ok := phaseByID[st.PhaseID]; ok {
			pt.Stages = append(pt.Stages, node)
		}
	}
	for _, t := range tasks {
		if node, ok := stageByID[t.StageID]; ok {
			node.Tasks = append(node.Tasks, t)
		}
	}
	return tree, nil
}

// LoadPhaseTree reads a phase with its stages and their tasks.
func (s *Store) LoadPhaseTree(ctx context.Context, phaseID string) (*domain.PhaseTree, error) {
	p, err := s.Phases.GetByID(ctx, phaseID)
	if err != nil {
		return nil, err
	}
	stages, err := s.Stages.ListByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.Tasks.ListByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	pt := &domain.PhaseTree{Phase: p}
	stageByID := make(map[string]*domain.StageTree, len(stages))
	for _, st := range stages {
		node := &domain.StageTree{Stage: st}
		stageByID[st.ID] = node
		pt.Stages = append(pt.Stages, node)
	}
	for _, t := range tasks {
		if node, ok := stageByID[t.StageID]; ok {
			node.Tasks = append(node.Tasks, t)
		}
	}
	return pt, nil
}
