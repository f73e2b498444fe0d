package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/powerhour/internal/ui/render"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"

	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  0:23  ▓▓▓▓▓░░░░░  1:00
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	posStr := render.Clock(position)
	durStr := render.Clock(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := int(float64(barWidth) * ratio)

	bar := progressFilledStyle().Render(strings.Repeat(filledBlock, filled)) +
		progressEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
