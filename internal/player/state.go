// internal/player/state.go
package player

// State represents the per-track playback state machine.
//
//	┌──────────┐  load   ┌──────────┐  start  ┌──────────┐
//	│  Stopped │ ───────▶│  Loaded  │ ───────▶│  Playing │
//	└──────────┘         └──────────┘         └──────────┘
//	     ▲                    │                  │    │
//	     │        stop        │        stop      │    │ end of stream
//	     └────────────────────┴──────────────────┘    ▼
//	     ▲                                      ┌──────────┐
//	     └───────────────── stop ───────────────│ Finished │
//	                                            └──────────┘
//
// Load from any state stops the current track first.
type State int

const (
	Stopped State = iota
	Loaded
	Playing
	Finished
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loaded:
		return "Loaded"
	case Playing:
		return "Playing"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// IsActive returns true while sound may be produced.
func (s State) IsActive() bool {
	return s == Playing
}
