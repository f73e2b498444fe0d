// Package beer draws the glass that fills up over the session.
package beer

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/powerhour/internal/ui/styles"
)

const (
	// Rows is the number of fillable rows inside the glass.
	Rows  = 6
	inner = 9
)

// Height is the number of lines Render returns.
const Height = Rows + 2

// Render draws the glass filled to fraction (0 to 1). The top filled row
// is foam.
func Render(fraction float64) string {
	t := styles.T()
	beerStyle := lipgloss.NewStyle().Foreground(t.Primary)
	foamStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	glassStyle := t.S().Muted

	fraction = min(max(fraction, 0), 1)
	filled := int(math.Round(fraction * Rows))

	lines := make([]string, 0, Height)
	lines = append(lines, glassStyle.Render("╭"+strings.Repeat("─", inner)+"╮ "))
	for row := range Rows {
		level := Rows - row // 1 is the bottom row
		var content string
		switch {
		case level > filled:
			content = strings.Repeat(" ", inner)
		case level == filled:
			content = foamStyle.Render(strings.Repeat("░", inner))
		default:
			content = beerStyle.Render(strings.Repeat("▓", inner))
		}
		lines = append(lines, glassStyle.Render("│")+content+glassStyle.Render("│"+handle(row)))
	}
	lines = append(lines, glassStyle.Render("╰"+strings.Repeat("─", inner)+"╯ "))
	return strings.Join(lines, "\n")
}

func handle(row int) string {
	switch row {
	case 1:
		return "╮"
	case Rows - 2:
		return "╯"
	case 2, 3:
		return "│"
	default:
		return " "
	}
}
