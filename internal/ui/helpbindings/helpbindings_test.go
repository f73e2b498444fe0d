package helpbindings

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/powerhour/internal/keymap"
)

func TestLine(t *testing.T) {
	got := ansi.Strip(Line(keymap.Default()))
	want := "s skip · p pause · q quit · ? help"
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestPanel(t *testing.T) {
	got := ansi.Strip(Panel(keymap.Default()))
	for _, want := range []string{"Session", "Global", "s, →, n", "p, space", "q, ctrl+c, esc", "pause"} {
		if !strings.Contains(got, want) {
			t.Errorf("Panel() missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Session") > strings.Index(got, "Global") {
		t.Error("Session bindings should come before Global")
	}
}
