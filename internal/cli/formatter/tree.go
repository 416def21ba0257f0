package formatter

import (
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a rendered hierarchy.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Status is set for task lines only.
	Status domain.TaskStatus
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing
// connectors. Completed tasks get a green ✔, tasks in progress an amber ▶,
// and details are aligned in a right-hand column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		switch item.Status {
		case domain.TaskCompleted:
			title = StyleGreen.Render("✔ ") + Dim(title)
		case domain.TaskInProgress:
			title = StyleYellowBold.Render("▶ " + title)
		}
		contents[i] = prefix + title
		width = max(width, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(contents[i])+2))
			b.WriteString(StyleBlue.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
