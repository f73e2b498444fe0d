package lastfm

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/llehouerou/powerhour/internal/session"
)

// Updater sends now-playing updates. *Client implements it.
type Updater interface {
	UpdateNowPlaying(NowPlaying) error
}

// Reporter sends a now-playing update for every round. Rounds are shorter
// than Last.fm's scrobble threshold, so nothing is scrobbled.
type Reporter struct {
	u   Updater
	log zerolog.Logger
}

// NewReporter creates a reporter over u.
func NewReporter(u Updater, log zerolog.Logger) *Reporter {
	return &Reporter{u: u, log: log.With().Str("component", "lastfm").Logger()}
}

// Run follows sub until it closes or ctx is done. Errors are logged.
func (r *Reporter) Run(ctx context.Context, sub *session.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.RoundStarted:
			r.roundStarted(e)
		case <-sub.RoundEnded:
		case <-sub.PhaseChanged:
		}
	}
}

func (r *Reporter) roundStarted(e session.RoundStarted) {
	t := e.Track
	// Last.fm rejects updates without both fields.
	if e.Resumed || t.Artist == "" || t.Title == "" {
		return
	}
	err := r.u.UpdateNowPlaying(NowPlaying{
		Artist:   t.Artist,
		Track:    t.Title,
		Album:    t.Album,
		Duration: t.Duration,
	})
	if err != nil {
		r.log.Warn().Err(err).Str("track", t.Path).Msg("now playing update failed")
		return
	}
	r.log.Debug().Int("round", e.Number).Str("track", t.Path).Msg("now playing sent")
}
