package session

import (
	"testing"
	"time"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseIdle, "Idle"},
		{PhasePlaying, "Playing"},
		{PhasePaused, "Paused"},
		{PhaseCompleted, "Completed"},
		{PhaseTerminated, "Terminated"},
		{PhaseFailed, "Failed"},
		{Phase(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPhase_IsActive(t *testing.T) {
	active := map[Phase]bool{PhasePlaying: true, PhasePaused: true}
	for _, p := range []Phase{PhaseIdle, PhasePlaying, PhasePaused, PhaseCompleted, PhaseTerminated, PhaseFailed} {
		if got := p.IsActive(); got != active[p] {
			t.Errorf("%v.IsActive() = %v, want %v", p, got, active[p])
		}
		if p.IsActive() && p.IsFinal() {
			t.Errorf("%v is both active and final", p)
		}
	}
}

func TestExit_String(t *testing.T) {
	for e, want := range map[Exit]string{
		ExitCompleted:  "completed",
		ExitSkipped:    "skipped",
		ExitPaused:     "paused",
		ExitTerminated: "terminated",
		ExitFailed:     "failed",
	} {
		if got := e.String(); got != want {
			t.Errorf("Exit(%d).String() = %q, want %q", e, got, want)
		}
	}
}

func TestState_Fractions(t *testing.T) {
	s := State{
		Rounds:        4,
		RoundDuration: time.Minute,
		Progress: Progress{
			Round:          1,
			RoundElapsed:   30 * time.Second,
			SessionElapsed: 90 * time.Second,
		},
	}
	if got := s.Number(); got != 2 {
		t.Errorf("Number() = %d, want 2", got)
	}
	if got := s.RoundFraction(); got != 0.5 {
		t.Errorf("RoundFraction() = %v, want 0.5", got)
	}
	if got := s.SessionFraction(); got != 0.375 {
		t.Errorf("SessionFraction() = %v, want 0.375", got)
	}
	if got := s.Remaining(); got != 150*time.Second {
		t.Errorf("Remaining() = %v, want 2m30s", got)
	}

	s.Progress.Round = 4
	if got := s.Number(); got != 4 {
		t.Errorf("Number() after last round = %d, want 4", got)
	}

	if got := (State{}).SessionFraction(); got != 0 {
		t.Errorf("zero State SessionFraction() = %v, want 0", got)
	}
}

func TestConfig_Total(t *testing.T) {
	if got := DefaultConfig().Total(); got != time.Hour {
		t.Errorf("DefaultConfig().Total() = %v, want 1h", got)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}
