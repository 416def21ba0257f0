package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID renders the first 8 characters of an id, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Money formats a budgeted cost with the grouping and decimal separators
// of tag, e.g. 7.000,00 for pt-BR and 7,000.00 for en-US.
func Money(tag language.Tag, amount float64) string {
	return message.NewPrinter(tag).Sprintf("%.2f", amount)
}

// Percent formats a stored progress value in the conventions of tag.
func Percent(tag language.Tag, pct float64) string {
	return message.NewPrinter(tag).Sprintf("%.2f%%", pct)
}
