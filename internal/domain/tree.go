package domain

// ConstructionTree is a construction with its full phase/stage/task
// hierarchy loaded, in store order.
type ConstructionTree struct {
	Construction *Construction
	Phases       []*PhaseTree
}

type PhaseTree struct {
	Phase  *Phase
	Stages []*StageTree
}

type StageTree struct {
	Stage *Stage
	Tasks []*Task
}

// Cost is the sum of the budgeted costs of the stage's tasks.
func (s *StageTree) Cost() float64 {
	var total float64
	for _, t := range s.Tasks {
		total += t.BudgetedCost
	}
	return total
}

// Cost is the sum of the budgeted costs of every task under the phase.
func (p *PhaseTree) Cost() float64 {
	var total float64
	for _, s := range p.Stages {
		total += s.Cost()
	}
	return total
}

func (c *ConstructionTree) Cost() float64 {
	var total float64
	for _, p := range c.Phases {
		total += p.Cost()
	}
	return total
}

// Counts returns the number of phases, stages and tasks in the tree.
func (c *ConstructionTree) Counts() (phases, stages, tasks int) {
	phases = len(c.Phases)
	for _, p := range c.Phases {
		stages += len(p.Stages)
		for _, s := range p.Stages {
			tasks += len(s.Tasks)
		}
	}
	return phases, stages, tasks
}
