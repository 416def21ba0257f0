package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"golang.org/x/text/language"
)

const barWidth = 10

func progressCell(tag language.Tag, pct float64) string {
	return RenderCompactBar(pct, barWidth) + " " + Percent(tag, pct)
}

// FormatConstructionList renders constructions as a table. templateID marks
// the template row.
func FormatConstructionList(cs []*domain.Construction, templateID string, tag language.Tag) string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		name := c.Name
		if c.ID == templateID {
			name += " " + Dim("(template)")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			name,
			strings.TrimSpace(strings.Join(nonEmpty(c.District, c.City), ", ")),
			progressCell(tag, c.Progress),
		})
	}
	return Header("Constructions") + "\n" + RenderTable([]string{"ID", "NAME", "LOCATION", "PROGRESS"}, rows)
}

// FormatPhaseList renders phases with full ids, which the phase, stage and
// task commands take as arguments.
func FormatPhaseList(phases []*domain.Phase, tag language.Tag) string {
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		rows = append(rows, []string{Dim(p.ID), p.Name, progressCell(tag, p.Progress)})
	}
	return RenderTable([]string{"ID", "PHASE", "PROGRESS"}, rows)
}

func FormatStageList(stages []*domain.Stage, tag language.Tag) string {
	rows := make([][]string, 0, len(stages))
	for _, s := range stages {
		name := s.Name
		if s.Skipped {
			name += " " + Dim("(skipped)")
		}
		rows = append(rows, []string{Dim(s.ID), name, progressCell(tag, s.Progress)})
	}
	return RenderTable([]string{"ID", "STAGE", "PROGRESS"}, rows)
}

func FormatTaskList(tasks []*domain.Task, tag language.Tag) string {
	rows := make([][]string, 0, len(tasks))
	var total float64
	for _, t := range tasks {
		total += t.BudgetedCost
		rows = append(rows, []string{Dim(t.ID), t.Name, Money(tag, t.BudgetedCost), StatusPill(t.Status)})
	}
	out := RenderTable([]string{"ID", "TASK", "BUDGET", "STATUS"}, rows)
	return out + Dim(fmt.Sprintf("total budget %s", Money(tag, total))) + "\n"
}

// FormatConstructionShow renders a construction's details and its whole
// hierarchy.
func FormatConstructionShow(tree *domain.ConstructionTree, tag language.Tag) string {
	c := tree.Construction
	phases, stages, tasks := tree.Counts()

	var details strings.Builder
	fmt.Fprintf(&details, "%s %s\n", Bold(c.Name), TruncID(c.ID))
	if addr := strings.Join(nonEmpty(c.Address, c.District, c.City, c.PostalCode), " · "); addr != "" {
		fmt.Fprintf(&details, "%s\n", addr)
	}
	if c.OwnerID != "" {
		fmt.Fprintf(&details, "%s %s\n", Dim("owner"), c.OwnerID)
	}
	fmt.Fprintf(&details, "%s %s\n", Dim("budget"), Money(tag, tree.Cost()))
	fmt.Fprintf(&details, "%s %d phases, %d stages, %d tasks\n", Dim("size"), phases, stages, tasks)
	details.WriteString(RenderProgress(c.Progress, 30))

	return RenderBox("Construction", details.String()) + "\n" + FormatTree(tree, tag)
}

// FormatTree renders the hierarchy beneath a construction with progress
// for phases and stages and budgets for tasks.
func FormatTree(tree *domain.ConstructionTree, tag language.Tag) string {
	items := []TreeItem{{
		Title:  Bold(tree.Construction.Name),
		Detail: Percent(tag, tree.Construction.Progress),
	}}
	for i, pt := range tree.Phases {
		items = append(items, TreeItem{
			Title:  pt.Phase.Name,
			Level:  1,
			IsLast: i == len(tree.Phases)-1,
			Detail: Percent(tag, pt.Phase.Progress),
		})
		for j, st := range pt.Stages {
			items = append(items, TreeItem{
				Title:  st.Stage.Name,
				Level:  2,
				IsLast: j == len(pt.Stages)-1,
				Detail: Percent(tag, st.Stage.Progress),
			})
			for k, t := range st.Tasks {
				items = append(items, TreeItem{
					Title:  t.Name,
					Level:  3,
					IsLast: k == len(st.Tasks)-1,
					Status: t.Status,
					Detail: Money(tag, t.BudgetedCost),
				})
			}
		}
	}
	return RenderTree(items)
}

// FormatCopyResult summarises a phase created from the template.
func FormatCopyResult(phase *domain.Phase, stages, tasks int) string {
	return fmt.Sprintf("Created phase %s %s from template: %d stages, %d tasks\n",
		Bold(phase.Name), Dim(phase.ID), stages, tasks)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
