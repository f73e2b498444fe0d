package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for colors that are not #rrggbb (ANSI indexes).
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ramp is a precomputed run of hex colors from one end of a gradient to
// the other, blended in HCL.
type ramp []lipgloss.Color

func newRamp(steps int, from, to lipgloss.Color) ramp {
	if steps < 2 {
		return ramp{from}
	}
	a, b := parseHex(from), parseHex(to)
	r := make(ramp, steps)
	for i := range r {
		r[i] = lipgloss.Color(a.BlendHcl(b, float64(i)/float64(steps-1)).Clamped().Hex())
	}
	return r
}

// at returns the color for column col, holding the last color past the end.
func (r ramp) at(col int) lipgloss.Color {
	return r[min(col, len(r)-1)]
}

func parseHex(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}

// paint colors each grapheme cluster of line by its starting column.
// Spaces are left unstyled.
func paint(line string, r ramp) string {
	var b strings.Builder
	col := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == " " {
			b.WriteString(cluster)
		} else {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(r.at(col)).Render(cluster))
		}
		col += gr.Width()
	}
	return b.String()
}

// ApplyBoldGradient renders bold text shaded from one color to another.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}
	return paint(text, newRamp(uniseg.StringWidth(text), from, to))
}

// Banner shades a multi-line block with the theme gradient. All lines
// share the ramp so columns line up in color.
func (t *Theme) Banner(lines []string) string {
	width := 0
	for _, l := range lines {
		width = max(width, uniseg.StringWidth(l))
	}
	r := newRamp(width, t.Primary, t.Secondary)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = paint(line, r)
	}
	return strings.Join(out, "\n")
}

// GradientColors returns the theme gradient ends as hex strings, for
// widgets such as bubbles/progress that take colors by name.
func (t *Theme) GradientColors() (from, to string) {
	return string(t.Primary), string(t.Secondary)
}
