package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/powerhour/internal/playlist"
	"github.com/llehouerou/powerhour/internal/session"
)

type fakeSession struct {
	state  session.State
	active bool

	skips, toggles, quits int
	accept                bool
}

func (f *fakeSession) State() session.State { return f.state }
func (f *fakeSession) Active() bool         { return f.active }

func (f *fakeSession) Skip() bool {
	f.skips++
	return f.accept
}

func (f *fakeSession) TogglePause() bool {
	f.toggles++
	return f.accept
}

func (f *fakeSession) Quit() bool {
	f.quits++
	return f.accept
}

func playingSession() *fakeSession {
	return &fakeSession{
		active: true,
		accept: true,
		state: session.State{
			Phase: session.PhasePlaying,
			Track: playlist.Track{Path: "/music/a.mp3", Title: "Shots", Artist: "LMFAO"},
			Progress: session.Progress{
				Round:          2,
				RoundElapsed:   23 * time.Second,
				SessionElapsed: 2*time.Minute + 23*time.Second,
			},
			Rounds:        60,
			RoundDuration: time.Minute,
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestKeysDriveSession(t *testing.T) {
	tests := []struct {
		key                   string
		skips, toggles, quits int
	}{
		{"s", 1, 0, 0},
		{"n", 1, 0, 0},
		{"right", 1, 0, 0},
		{"p", 0, 1, 0},
		{" ", 0, 1, 0},
		{"q", 0, 0, 1},
		{"ctrl+c", 0, 0, 1},
		{"x", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			fake := playingSession()
			m := New(fake)
			_, cmd := update(t, m, key(tt.key))
			if fake.skips != tt.skips || fake.toggles != tt.toggles || fake.quits != tt.quits {
				t.Errorf("skips/toggles/quits = %d/%d/%d, want %d/%d/%d",
					fake.skips, fake.toggles, fake.quits, tt.skips, tt.toggles, tt.quits)
			}
			if isQuit(cmd) {
				t.Error("key returned tea.Quit while the session is running")
			}
		})
	}
}

func TestQuitAfterSessionEnded(t *testing.T) {
	fake := playingSession()
	fake.accept = false
	m := New(fake)

	m, cmd := update(t, m, key("q"))
	if !isQuit(cmd) {
		t.Fatal("quit with a closed session should exit the program")
	}
	if !m.Quitting() {
		t.Error("Quitting() = false after quit key")
	}
}

func TestHelpToggle(t *testing.T) {
	m := New(playingSession())
	if strings.Contains(ansi.Strip(m.View()), "Session") {
		t.Fatal("full help shown before ?")
	}
	m, _ = update(t, m, key("?"))
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Session") || !strings.Contains(view, "Global") {
		t.Errorf("full help missing after ?:\n%s", view)
	}
	m, _ = update(t, m, key("?"))
	if !strings.Contains(ansi.Strip(m.View()), "s skip") {
		t.Error("short help not restored after second ?")
	}
}

func TestTickRefreshesState(t *testing.T) {
	fake := playingSession()
	m := New(fake)
	fake.state.Progress.Round = 5

	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.State().Progress.Round != 5 {
		t.Errorf("Round = %d after tick, want 5", m.State().Progress.Round)
	}
	if cmd == nil || isQuit(cmd) {
		t.Error("tick on a running session should schedule the next tick")
	}
}

func TestTickQuitsWhenFinished(t *testing.T) {
	fake := playingSession()
	m := New(fake)
	fake.active = false
	fake.state.Phase = session.PhaseCompleted
	fake.state.Progress.Round = 60

	m, cmd := update(t, m, TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Fatal("finished session should quit the program")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Cheers!") {
		t.Errorf("completed view missing Cheers!:\n%s", view)
	}
}

func TestViewPlaying(t *testing.T) {
	m := New(playingSession(), WithLibrary(1234, "~/Music"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := ansi.Strip(m.View())

	for _, want := range []string{"Round 3 of 60", "1,234 tracks", "57:37 left", "Shots", "LMFAO", "0:23", "2:23", "1:00:00", "s skip"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewPaused(t *testing.T) {
	fake := playingSession()
	fake.state.Phase = session.PhasePaused
	m := New(fake)
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Paused · press p to resume") {
		t.Errorf("paused view missing hint:\n%s", view)
	}
}

func TestViewFailed(t *testing.T) {
	fake := playingSession()
	fake.state.Phase = session.PhaseFailed
	fake.state.Err = playlist.ErrNoPlayableTracks
	m := New(fake)
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Session failed") {
		t.Errorf("failed view missing error:\n%s", view)
	}
}

func TestRoundEventsSetStatus(t *testing.T) {
	m := New(playingSession())
	track := playlist.Track{Path: "/music/broken.mp3"}

	m, _ = update(t, m, RoundEndedMsg{Number: 3, Track: track, Exit: session.ExitFailed})
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Could not play broken") {
		t.Errorf("view missing failure line:\n%s", view)
	}

	m, _ = update(t, m, RoundEndedMsg{Number: 3, Track: track, Exit: session.ExitCompleted})
	if view := ansi.Strip(m.View()); strings.Contains(view, "broken") {
		t.Errorf("completed round should clear the status line:\n%s", view)
	}
}

func TestDescribeExit(t *testing.T) {
	track := playlist.Track{Path: "/x/song.mp3", Title: "Song"}
	tests := []struct {
		exit session.Exit
		want string
	}{
		{session.ExitSkipped, "Skipped Song"},
		{session.ExitFailed, "Could not play Song"},
		{session.ExitCompleted, ""},
		{session.ExitPaused, ""},
	}
	for _, tt := range tests {
		if got := describeExit(session.RoundEnded{Track: track, Exit: tt.exit}); got != tt.want {
			t.Errorf("describeExit(%v) = %q, want %q", tt.exit, got, tt.want)
		}
	}
}
