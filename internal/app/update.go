package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/powerhour/internal/keymap"
	"github.com/llehouerou/powerhour/internal/session"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.state = m.session.State()
		if !m.session.Active() && m.state.Phase.IsFinal() {
			return m, tea.Quit
		}
		return m, TickCmd()

	case RoundStartedMsg:
		if msg.Resumed {
			m.lastRound = fmt.Sprintf("Round %d resumed", msg.Number)
		}
		return m, m.WatchEvents()

	case RoundEndedMsg:
		m.lastRound = describeExit(session.RoundEnded(msg))
		return m, m.WatchEvents()

	case SessionDoneMsg:
		m.state = m.session.State()
		return m, nil
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.progress.Width = max(m.contentWidth()-2*clockWidth, 10)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionSkip:
		m.session.Skip()
	case keymap.ActionTogglePause:
		m.session.TogglePause()
	case keymap.ActionQuit:
		m.quitting = true
		// Nothing left to stop the TUI if the session is already gone.
		if !m.session.Quit() {
			return m, tea.Quit
		}
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// describeExit summarizes a finished round attempt for the status line.
// Completed rounds are not worth a line.
func describeExit(e session.RoundEnded) string {
	title := e.Track.DisplayTitle()
	switch e.Exit {
	case session.ExitSkipped:
		return fmt.Sprintf("Skipped %s", title)
	case session.ExitFailed:
		return fmt.Sprintf("Could not play %s", title)
	case session.ExitCompleted, session.ExitPaused, session.ExitTerminated:
	}
	return ""
}
