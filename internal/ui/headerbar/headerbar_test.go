package headerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/powerhour/internal/session"
)

func TestRender(t *testing.T) {
	s := session.State{
		Rounds:        60,
		RoundDuration: time.Minute,
		Progress:      session.Progress{Round: 2, SessionElapsed: 2*time.Minute + 30*time.Second},
	}
	out := ansi.Strip(Render(s, 1234, 60))

	if !strings.HasPrefix(out, "Round 3 of 60") {
		t.Errorf("Render() = %q, want round counter first", out)
	}
	if !strings.HasSuffix(out, "1,234 tracks · 57:30 left") {
		t.Errorf("Render() = %q, want humanized track count and time left", out)
	}
	if w := ansi.StringWidth(out); w != 60 {
		t.Errorf("width = %d, want 60", w)
	}
}

func TestRender_SingleTrack(t *testing.T) {
	s := session.State{Rounds: 1, RoundDuration: time.Minute}
	out := ansi.Strip(Render(s, 1, 50))
	if !strings.Contains(out, "1 track ·") {
		t.Errorf("Render() = %q, want singular", out)
	}
}

func TestBanner(t *testing.T) {
	wide := ansi.Strip(Banner(80))
	if n := strings.Count(wide, "\n") + 1; n != BannerHeight {
		t.Errorf("wide banner has %d lines, want %d", n, BannerHeight)
	}
	if !strings.Contains(wide, "█▀█") {
		t.Errorf("wide banner = %q, want block art", wide)
	}

	narrow := ansi.Strip(Banner(20))
	if !strings.Contains(narrow, "POWER HOUR") {
		t.Errorf("narrow banner = %q, want plain title", narrow)
	}
	if n := strings.Count(narrow, "\n") + 1; n != BannerHeight {
		t.Errorf("narrow banner has %d lines, want %d", n, BannerHeight)
	}
}
