// Package mpris lets desktop media keys and widgets drive a power hour.
package mpris

import (
	"fmt"

	"github.com/llehouerou/powerhour/internal/session"
)

const (
	busName  = "powerhour"
	identity = "Power Hour"
)

// Session is the part of a game the adapter controls and reports on.
type Session interface {
	State() session.State
	Skip() bool
	TogglePause() bool
	Quit() bool
}

// Status is the MPRIS playback status of a session phase.
type Status string

const (
	StatusPlaying Status = "Playing"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

func statusOf(p session.Phase) Status {
	switch p {
	case session.PhasePlaying:
		return StatusPlaying
	case session.PhasePaused:
		return StatusPaused
	case session.PhaseIdle, session.PhaseCompleted, session.PhaseTerminated, session.PhaseFailed:
	}
	return StatusStopped
}

// roundTitle prefixes the track title with the round, since the length
// reported is the round's and not the track's.
func roundTitle(s session.State) string {
	return fmt.Sprintf("[%d/%d] %s", s.Number(), s.Rounds, s.Track.DisplayTitle())
}
