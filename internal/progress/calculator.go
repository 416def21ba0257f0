// Package progress computes cost-weighted completion percentages for the
// construction hierarchy. Everything here is pure; persistence lives in the
// service layer.
package progress

import (
	"math"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// Weight is one child in a weighted rollup. Completed is the fraction of the
// child that is done, in [0,1].
type Weight struct {
	Cost      float64
	Completed float64
}

// Weighted returns Σ(cost·completed) / Σcost · 100. An empty set or a zero
// total cost yields 0. The result is not rounded.
func Weighted(children []Weight) float64 {
	if len(children) == 0 {
		return 0
	}
	var totalCost, completedCost float64
	for _, c := range children {
		totalCost += c.Cost
		completedCost += c.Cost * c.Completed
	}
	if totalCost == 0 || math.IsInf(totalCost, 0) {
		return 0
	}
	return completedCost / totalCost * 100
}

// Round rounds half away from zero at the second decimal and clamps to
// [0,100]. NaN becomes 0.
func Round(pct float64) float64 {
	r := math.Round(pct*100) / 100
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 100:
		return 100
	}
	return r
}

// TaskWeights weighs tasks by budgeted cost with binary completion.
func TaskWeights(tasks []*domain.Task) []Weight {
	weights := make([]Weight, 0, len(tasks))
	for _, t := range tasks {
		w := Weight{Cost: t.BudgetedCost}
		if t.IsCompleted() {
			w.Completed = 1
		}
		weights = append(weights, w)
	}
	return weights
}

// StageWeights weighs stages by the summed budget of their tasks and
// credits each with its own stored progress as a fraction.
func StageWeights(stages []*domain.StageTree) []Weight {
	weights := make([]Weight, 0, len(stages))
	for _, s := range stages {
		weights = append(weights, Weight{Cost: s.Cost(), Completed: s.Stage.Progress / 100})
	}
	return weights
}

// PhaseWeights weighs phases by the summed budget of every task beneath
// them and credits each with its own stored progress as a fraction.
func PhaseWeights(phases []*domain.PhaseTree) []Weight {
	weights := make([]Weight, 0, len(phases))
	for _, p := range phases {
		weights = append(weights, Weight{Cost: p.Cost(), Completed: p.Phase.Progress / 100})
	}
	return weights
}

// Stage computes the rounded progress of a stage from its tasks.
func Stage(tasks []*domain.Task) float64 {
	return Round(Weighted(TaskWeights(tasks)))
}

// Phase computes the rounded progress of a phase from its stages' stored
// progress.
func Phase(stages []*domain.StageTree) float64 {
	return Round(Weighted(StageWeights(stages)))
}

// Construction computes the rounded progress of a construction from its
// phases' stored progress.
func Construction(phases []*domain.PhaseTree) float64 {
	return Round(Weighted(PhaseWeights(phases)))
}

// Rollup recomputes every stage, then every phase, then the construction of
// tree in place. It reports which entities changed value so callers only
// persist what moved.
func Rollup(tree *domain.ConstructionTree) Changes {
	var ch Changes
	for _, pt := range tree.Phases {
		RollupPhase(pt, &ch)
	}
	if pct := Construction(tree.Phases); pct != tree.Construction.Progress {
		tree.Construction.Progress = pct
		ch.Construction = true
	}
	return ch
}

// RollupPhase recomputes the stages of pt and then pt itself, recording
// changes into ch.
func RollupPhase(pt *domain.PhaseTree, ch *Changes) {
	for _, st := range pt.Stages {
		if pct := Stage(st.Tasks); pct != st.Stage.Progress {
			st.Stage.Progress = pct
			ch.Stages = append(ch.Stages, st.Stage)
		}
	}
	if pct := Phase(pt.Stages); pct != pt.Phase.Progress {
		pt.Phase.Progress = pct
		ch.Phases = append(ch.Phases, pt.Phase)
	}
}

// Changes lists the aggregates whose progress moved during a rollup.
type Changes struct {
	Stages       []*domain.Stage
	Phases       []*domain.Phase
	Construction bool
}

// Empty reports whether nothing moved.
func (c Changes) Empty() bool {
	return len(c.Stages) == 0 && len(c.Phases) == 0 && !c.Construction
}
