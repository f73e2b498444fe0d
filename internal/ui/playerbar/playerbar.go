// Package playerbar renders the now-playing block and the round progress bar.
package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/powerhour/internal/session"
	"github.com/llehouerou/powerhour/internal/ui/render"
)

// Height is the number of lines Render returns.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Title    string
	Artist   string
	Album    string
	Position time.Duration // into the round
	Duration time.Duration // round length
}

// NewState builds a State from a session snapshot.
func NewState(s session.State) State {
	st := State{
		Playing:  s.Phase == session.PhasePlaying,
		Paused:   s.Phase == session.PhasePaused,
		Position: s.Progress.RoundElapsed,
		Duration: s.RoundDuration,
	}
	if s.Track.Path != "" {
		st.Title = s.Track.DisplayTitle()
		st.Artist = s.Track.Artist
		st.Album = s.Track.Album
	}
	return st
}

// Render returns the player block for the given width. It is blank until
// the first track starts.
func Render(s State, width int) string {
	lines := make([]string, Height)
	if s.Title == "" {
		if s.Playing {
			lines[0] = artistStyle().Render("Pouring the first round…")
		}
		return strings.Join(lines, "\n")
	}

	lines[0] = titleStyle().Render(render.Truncate(s.Title, width))

	var info []string
	if s.Artist != "" {
		info = append(info, s.Artist)
	}
	if s.Album != "" {
		info = append(info, s.Album)
	}
	lines[1] = artistStyle().Render(render.Truncate(strings.Join(info, " · "), width))
	lines[2] = ""
	lines[3] = RenderProgressBar(s.Position, s.Duration, width, !s.Paused)
	return strings.Join(lines, "\n")
}
