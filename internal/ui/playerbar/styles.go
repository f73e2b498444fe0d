package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/powerhour/internal/ui/styles"
)

func titleStyle() lipgloss.Style          { return styles.T().S().Title }
func artistStyle() lipgloss.Style         { return styles.T().S().Muted }
func progressFilledStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Primary) }
func progressEmptyStyle() lipgloss.Style  { return styles.T().S().Subtle }
