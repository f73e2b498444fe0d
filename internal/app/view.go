package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/powerhour/internal/keymap"
	"github.com/llehouerou/powerhour/internal/session"
	"github.com/llehouerou/powerhour/internal/ui/beer"
	"github.com/llehouerou/powerhour/internal/ui/headerbar"
	"github.com/llehouerou/powerhour/internal/ui/helpbindings"
	"github.com/llehouerou/powerhour/internal/ui/playerbar"
	"github.com/llehouerou/powerhour/internal/ui/render"
	"github.com/llehouerou/powerhour/internal/ui/styles"
)

const (
	defaultWidth = 72
	beerGap      = 3
	clockWidth   = 9 // " 1:23:45 "
)

// View renders the application UI.
func (m Model) View() string {
	if m.quitting && !m.state.Phase.IsFinal() {
		return ""
	}

	st := styles.T().S()
	width := m.contentWidth()

	glass := beer.Render(m.state.SessionFraction())
	nowWidth := max(width-lipgloss.Width(glass)-beerGap, 10)
	now := playerbar.Render(playerbar.NewState(m.state), nowWidth)
	middle := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Width(nowWidth+beerGap).Render(now),
		glass,
	)

	sections := []string{
		headerbar.Banner(width),
		"",
		headerbar.Render(m.state, m.tracks, width),
		"",
		middle,
		"",
		m.renderSessionBar(),
		m.renderStatus(width),
		"",
	}
	if m.showHelp {
		sections = append(sections, helpbindings.Panel(m.keys))
	} else {
		sections = append(sections, render.Center(helpbindings.Line(m.keys), width))
	}

	return st.Frame.Width(width + 4).Render(strings.Join(sections, "\n"))
}

// renderSessionBar shows the whole hour: elapsed, bar, total.
func (m Model) renderSessionBar() string {
	st := styles.T().S()
	total := m.state.RoundDuration * time.Duration(m.state.Rounds)
	bar := m.progress.ViewAs(m.state.SessionFraction())
	return lipgloss.JoinHorizontal(lipgloss.Center,
		st.Muted.Width(clockWidth).Render(render.Clock(m.state.Progress.SessionElapsed)),
		bar,
		st.Muted.Width(clockWidth).Align(lipgloss.Right).Render(render.Clock(total)),
	)
}

func (m Model) renderStatus(width int) string {
	st := styles.T().S()
	s := m.state

	var line string
	switch s.Phase {
	case session.PhasePaused:
		line = st.Warning.Render("Paused")
		if keys := m.keys.KeysFor(keymap.ActionTogglePause); len(keys) > 0 {
			line += st.Muted.Render(" · press " + keymap.KeyName(keys[0]) + " to resume")
		}
	case session.PhaseCompleted:
		line = st.Success.Render("Cheers! ") + st.Muted.Render(english.Plural(s.Rounds, "round", "")+" down")
	case session.PhaseTerminated:
		line = st.Muted.Render("Ended after " + english.Plural(s.Progress.Round, "round", ""))
	case session.PhaseFailed:
		msg := "Session failed"
		if s.Err != nil {
			msg += ": " + s.Err.Error()
		}
		line = st.Error.Render(render.Truncate(msg, width))
	case session.PhaseIdle:
		if m.source != "" {
			line = st.Subtle.Render(render.Truncate("Shuffling "+m.source, width))
		}
	case session.PhasePlaying:
		if m.lastRound != "" {
			line = st.Subtle.Render(render.Truncate(m.lastRound, width))
		}
	}
	return render.Center(line, width)
}

func (m Model) contentWidth() int {
	if m.Width <= 0 {
		return defaultWidth
	}
	// Border and horizontal padding of the frame
	return max(min(m.Width-6, defaultWidth+24), 20)
}
