// Package headerbar renders the banner and the round counter line.
package headerbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/powerhour/internal/session"
	"github.com/llehouerou/powerhour/internal/ui/render"
	"github.com/llehouerou/powerhour/internal/ui/styles"
)

var banner = []string{
	"█▀█ █▀█ █ █ █ █▀▀ █▀█   █ █ █▀█ █ █ █▀█",
	"█▀▀ █▄█ ▀▄▀▄▀ ██▄ █▀▄   █▀█ █▄█ █▄█ █▀▄",
}

const plainTitle = "POWER HOUR"

// BannerHeight is the number of lines Banner returns.
var BannerHeight = len(banner)

// Banner renders the title with the theme gradient, centered in width.
// Narrow terminals get a single-line title padded to the same height.
func Banner(width int) string {
	t := styles.T()
	if width < lipgloss.Width(banner[0]) {
		title := render.Center(styles.ApplyBoldGradient(plainTitle, t.Primary, t.Secondary), width)
		lines := make([]string, BannerHeight)
		lines[0] = title
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	block := t.Banner(banner)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// Render returns the round counter line: "Round 3 of 60" on the left,
// library size and time left on the right.
func Render(s session.State, tracks int, width int) string {
	st := styles.T().S()
	left := st.Accent.Render(fmt.Sprintf("Round %d of %d", s.Number(), s.Rounds))
	right := st.Muted.Render(fmt.Sprintf("%s %s · %s left",
		humanize.Comma(int64(tracks)),
		english.PluralWord(tracks, "track", ""),
		render.Clock(s.Remaining()),
	))
	return render.Row(left, right, width)
}
