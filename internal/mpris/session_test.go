package mpris

import (
	"testing"
	"time"

	"github.com/llehouerou/powerhour/internal/playlist"
	"github.com/llehouerou/powerhour/internal/session"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		phase session.Phase
		want  Status
	}{
		{session.PhaseIdle, StatusStopped},
		{session.PhasePlaying, StatusPlaying},
		{session.PhasePaused, StatusPaused},
		{session.PhaseCompleted, StatusStopped},
		{session.PhaseTerminated, StatusStopped},
		{session.PhaseFailed, StatusStopped},
	}
	for _, tt := range tests {
		if got := statusOf(tt.phase); got != tt.want {
			t.Errorf("statusOf(%v) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestRoundTitle(t *testing.T) {
	s := session.State{
		Track:         playlist.Track{Path: "/music/Shots.mp3"},
		Progress:      session.Progress{Round: 4},
		Rounds:        60,
		RoundDuration: time.Minute,
	}
	if got, want := roundTitle(s), "[5/60] Shots"; got != want {
		t.Errorf("roundTitle() = %q, want %q", got, want)
	}
}
