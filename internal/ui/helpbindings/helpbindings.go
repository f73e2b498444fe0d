// Package helpbindings renders key binding help: a one-line summary under
// the session and a full panel toggled with "?".
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/powerhour/internal/keymap"
	"github.com/llehouerou/powerhour/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{"session", "global"}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"session": "Session",
	"global":  "Global",
}

// Line renders the short help: the first key of every binding.
func Line(r *keymap.Resolver) string {
	st := styles.T().S()
	entries := r.Help(false)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = st.Base.Render(e.Key) + " " + st.Subtle.Render(e.Description)
	}
	return strings.Join(parts, st.Subtle.Render(" · "))
}

// Panel renders every binding, grouped by context, in a bordered box.
func Panel(r *keymap.Resolver) string {
	st := styles.T().S()

	var rows []string
	for _, ctx := range categoryOrder {
		bindings := keymap.ByContext(ctx)
		if len(bindings) == 0 {
			continue
		}
		if len(rows) > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, st.Accent.Render(categoryLabels[ctx]))
		for _, b := range bindings {
			keys := r.KeysFor(b.Action)
			names := make([]string, len(keys))
			for i, k := range keys {
				names[i] = keymap.KeyName(k)
			}
			rows = append(rows, "  "+st.Base.Width(16).Render(strings.Join(names, ", "))+st.Muted.Render(b.Description))
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Primary).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
