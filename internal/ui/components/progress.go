package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

// LevelBar shows level progress as one cell per level. Games top out
// around a dozen levels, so discrete cells read better than a smooth
// percent fill.
type LevelBar struct {
	Label   string
	Cleared int
	Total   int
	Width   int
}

// NewLevelBar creates a level bar with Cleared of Total cells filled.
func NewLevelBar(label string, cleared, total, width int) LevelBar {
	return LevelBar{
		Label:   label,
		Cleared: cleared,
		Total:   total,
		Width:   width,
	}
}

// View renders the bar with a trailing cleared/total count.
func (p LevelBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	total := p.Total
	if total < 1 {
		total = 1
	}
	cleared := p.Cleared
	if cleared > total {
		cleared = total
	}
	if cleared < 0 {
		cleared = 0
	}

	count := fmt.Sprintf("  %d/%d", cleared, total)

	cellWidth := (p.Width - lipgloss.Width(result) - len(count) - (total - 1)) / total
	if cellWidth < 1 {
		cellWidth = 1
	}
	blank := strings.Repeat(" ", cellWidth)

	filled := lipgloss.NewStyle().Background(theme.Secondary)
	if cleared == total {
		filled = filled.Background(theme.Success)
	}
	rest := lipgloss.NewStyle().Background(theme.Border)

	cells := make([]string, 0, total)
	for i := 0; i < total; i++ {
		if i < cleared {
			cells = append(cells, filled.Render(blank))
		} else {
			cells = append(cells, rest.Render(blank))
		}
	}
	result += strings.Join(cells, " ")
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)

	return result
}
