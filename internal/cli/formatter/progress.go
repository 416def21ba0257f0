package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45% for a percentage in
// [0,100]. Out-of-range values are clamped.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	return fmt.Sprintf("[%s] %3.0f%%", ProgressStyle(pct).Render(bar(pct, width)), pct)
}

// RenderCompactBar renders just the blocks, for table cells.
func RenderCompactBar(pct float64, width int) string {
	pct = clampPct(pct)
	return ProgressStyle(pct).Render(bar(pct, width))
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
