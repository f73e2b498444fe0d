package session

import (
	"time"

	"github.com/llehouerou/powerhour/internal/playlist"
)

const eventBufferSize = 16

// RoundStarted is emitted when a track starts playing for a round,
// including when a paused round resumes.
type RoundStarted struct {
	Number  int // 1-based
	Rounds  int
	Track   playlist.Track
	Offset  time.Duration // round time already played
	Resumed bool
}

// RoundEnded is emitted when a round attempt ends for any reason.
type RoundEnded struct {
	Number int
	Track  playlist.Track
	Exit   Exit
}

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	Previous Phase
	Current  Phase
}

// Subscription delivers game notifications. Sends never block the game:
// events are dropped when a buffer is full. Done is closed when the game
// ends.
type Subscription struct {
	RoundStarted <-chan RoundStarted
	RoundEnded   <-chan RoundEnded
	PhaseChanged <-chan PhaseChanged
	Done         <-chan struct{}

	startedCh chan RoundStarted
	endedCh   chan RoundEnded
	phaseCh   chan PhaseChanged
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		startedCh: make(chan RoundStarted, eventBufferSize),
		endedCh:   make(chan RoundEnded, eventBufferSize),
		phaseCh:   make(chan PhaseChanged, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.RoundStarted = s.startedCh
	s.RoundEnded = s.endedCh
	s.PhaseChanged = s.phaseCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendStarted(e RoundStarted) {
	select {
	case s.startedCh <- e:
	default:
	}
}

func (s *Subscription) sendEnded(e RoundEnded) {
	select {
	case s.endedCh <- e:
	default:
	}
}

func (s *Subscription) sendPhase(e PhaseChanged) {
	select {
	case s.phaseCh <- e:
	default:
	}
}
