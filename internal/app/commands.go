package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickInterval is how often the view polls the session.
const TickInterval = 100 * time.Millisecond

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEvents returns a command that waits for the next session event.
// Phase changes are not forwarded; the tick picks them up.
func (m Model) WatchEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		for {
			select {
			case e := <-sub.RoundStarted:
				return RoundStartedMsg(e)
			case e := <-sub.RoundEnded:
				return RoundEndedMsg(e)
			case <-sub.PhaseChanged:
			case <-sub.Done:
				return SessionDoneMsg{}
			}
		}
	}
}
