package plan

import (
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// ToTree turns a validated plan into a fresh, unsaved hierarchy under the
// construction id given. Every task starts NOT_STARTED and every progress
// value is 0.
func ToTree(p *Plan, constructionID string) *domain.ConstructionTree {
	now := time.Now().UTC()
	c := &domain.Construction{
		ID:         constructionID,
		Name:       strings.TrimSpace(p.Construction.Name),
		Address:    p.Construction.Address,
		PostalCode: p.Construction.PostalCode,
		City:       p.Construction.City,
		District:   p.Construction.District,
		OwnerID:    p.Construction.OwnerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	tree := &domain.ConstructionTree{Construction: c}

	for _, ph := range p.Phases {
		phase := &domain.Phase{
			ID:             domain.NewID(),
			ConstructionID: c.ID,
			Name:           strings.TrimSpace(ph.Name),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		pt := &domain.PhaseTree{Phase: phase}
		for _, st := range ph.Stages {
			stage := &domain.Stage{
				ID:        domain.NewID(),
				PhaseID:   phase.ID,
				Name:      strings.TrimSpace(st.Name),
				CreatedAt: now,
				UpdatedAt: now,
			}
			node := &domain.StageTree{Stage: stage}
			for _, t := range st.Tasks {
				node.Tasks = append(node.Tasks, &domain.Task{
					ID:           domain.NewID(),
					StageID:      stage.ID,
					Name:         strings.TrimSpace(t.Name),
					BudgetedCost: domain.Float64FromPtrWithDefault(0, t.BudgetedCost),
					Status:       domain.TaskNotStarted,
					CreatedAt:    now,
					UpdatedAt:    now,
				})
			}
			pt.Stages = append(pt.Stages, node)
		}
		tree.Phases = append(tree.Phases, pt)
	}
	return tree
}

// FromTree is the inverse of ToTree: it captures the structure and budgets
// of a stored hierarchy, dropping ids and progress.
func FromTree(tree *domain.ConstructionTree) *Plan {
	c := tree.Construction
	p := &Plan{
		Construction: ConstructionSpec{
			Name:       c.Name,
			Address:    c.Address,
			PostalCode: c.PostalCode,
			City:       c.City,
			District:   c.District,
			OwnerID:    c.OwnerID,
		},
		Phases: make([]PhaseSpec, 0, len(tree.Phases)),
	}
	for _, pt := range tree.Phases {
		ph := PhaseSpec{Name: pt.Phase.Name}
		for _, node := range pt.Stages {
			st := StageSpec{Name: node.Stage.Name}
			for _, t := range node.Tasks {
				cost := t.BudgetedCost
				st.Tasks = append(st.Tasks, TaskSpec{Name: t.Name, BudgetedCost: &cost})
			}
			ph.Stages = append(ph.Stages, st)
		}
		p.Phases = append(p.Phases, ph)
	}
	return p
}
