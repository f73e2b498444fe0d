package session

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/powerhour/internal/playlist"
)

// Phase is the lifecycle state of a game.
//
//	Idle ──start──▶ Playing ◀──toggle──▶ Paused
//	                  │  │                  │
//	                  │  └─── last round ───┼──▶ Completed
//	                  └────── quit ─────────┴──▶ Terminated
//
// Any phase but Idle moves to Failed on a fatal error.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseCompleted
	PhaseTerminated
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseCompleted:
		return "Completed"
	case PhaseTerminated:
		return "Terminated"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive reports whether the game is still running rounds.
func (p Phase) IsActive() bool {
	return p == PhasePlaying || p == PhasePaused
}

// IsFinal reports whether the game has ended.
func (p Phase) IsFinal() bool {
	return p == PhaseCompleted || p == PhaseTerminated || p == PhaseFailed
}

// Exit is why one round attempt ended.
type Exit int

const (
	ExitCompleted Exit = iota
	ExitSkipped
	ExitPaused
	ExitTerminated
	ExitFailed
)

func (e Exit) String() string {
	switch e {
	case ExitCompleted:
		return "completed"
	case ExitSkipped:
		return "skipped"
	case ExitPaused:
		return "paused"
	case ExitTerminated:
		return "terminated"
	case ExitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInvalidConfig is returned by New for an unusable Config.
var ErrInvalidConfig = errors.New("invalid session config")

// Config is the schedule of a game. It cannot change once the game starts.
type Config struct {
	Rounds        int
	RoundDuration time.Duration

	// PollInterval bounds how late the scheduler notices a round deadline.
	PollInterval time.Duration

	// SkipAdvancesRound counts a skipped round as played. When false a
	// skip draws another track for the same round.
	SkipAdvancesRound bool

	// MinTrackLength rejects tracks known to be shorter. Zero disables it.
	MinTrackLength time.Duration
}

// DefaultConfig is sixty one-minute rounds.
func DefaultConfig() Config {
	return Config{
		Rounds:            60,
		RoundDuration:     time.Minute,
		PollInterval:      100 * time.Millisecond,
		SkipAdvancesRound: true,
	}
}

// Validate checks that the schedule is playable.
func (c Config) Validate() error {
	switch {
	case c.Rounds <= 0:
		return errors.Wrapf(ErrInvalidConfig, "rounds must be positive, got %d", c.Rounds)
	case c.RoundDuration <= 0:
		return errors.Wrapf(ErrInvalidConfig, "round duration must be positive, got %s", c.RoundDuration)
	case c.PollInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "poll interval must be positive, got %s", c.PollInterval)
	case c.MinTrackLength < 0:
		return errors.Wrapf(ErrInvalidConfig, "minimum track length is negative: %s", c.MinTrackLength)
	}
	return nil
}

// Total is the length of the whole session.
func (c Config) Total() time.Duration {
	return time.Duration(c.Rounds) * c.RoundDuration
}

// Progress is how far a game has got. Paused time is not counted.
type Progress struct {
	Round          int // rounds finished, 0..Rounds
	RoundElapsed   time.Duration
	SessionElapsed time.Duration
}

// State is a point-in-time copy of a game for display.
type State struct {
	Phase         Phase
	Track         playlist.Track // zero before the first round
	Progress      Progress
	Rounds        int
	RoundDuration time.Duration
	Err           error // set in PhaseFailed
}

// Number is the 1-based round being played, capped at Rounds.
func (s State) Number() int {
	return min(s.Progress.Round+1, s.Rounds)
}

// RoundFraction is the share of the current round played, 0 to 1.
func (s State) RoundFraction() float64 {
	return fraction(s.Progress.RoundElapsed, s.RoundDuration)
}

// SessionFraction is the share of the whole session played, 0 to 1.
func (s State) SessionFraction() float64 {
	return fraction(s.Progress.SessionElapsed, time.Duration(s.Rounds)*s.RoundDuration)
}

// Remaining is the session time left.
func (s State) Remaining() time.Duration {
	return max(time.Duration(s.Rounds)*s.RoundDuration-s.Progress.SessionElapsed, 0)
}

func fraction(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return min(max(float64(part)/float64(whole), 0), 1)
}
