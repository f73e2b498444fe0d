package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/library"
	"github.com/llehouerou/powerhour/internal/session"
)

const roundExpire = 5 * time.Second

// Rounds shows one notification per round. Each replaces the previous
// one, so at most one is on screen.
type Rounds struct {
	n      Notifier
	fsys   afero.Fs
	log    zerolog.Logger
	lastID uint32
}

// NewRounds creates a round notifier. Cover art is looked up on fsys.
func NewRounds(n Notifier, fsys afero.Fs, log zerolog.Logger) *Rounds {
	return &Rounds{n: n, fsys: fsys, log: log.With().Str("component", "notify").Logger()}
}

// Run follows sub until it closes or ctx is done. Send errors are logged
// and never stop the loop.
func (r *Rounds) Run(ctx context.Context, sub *session.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			// The completion phase change can still be buffered
			for {
				select {
				case e := <-sub.PhaseChanged:
					r.phaseChanged(e)
				default:
					return
				}
			}
		case e := <-sub.RoundStarted:
			r.roundStarted(e)
		case e := <-sub.PhaseChanged:
			r.phaseChanged(e)
		case <-sub.RoundEnded:
		}
	}
}

func (r *Rounds) roundStarted(e session.RoundStarted) {
	if e.Resumed {
		return
	}
	r.send(Notification{
		Summary: fmt.Sprintf("Round %d of %d", e.Number, e.Rounds),
		Body:    e.Track.NowPlaying(),
		Icon:    library.CoverArt(r.fsys, e.Track.Path),
		Expire:  roundExpire,
		Urgency: UrgencyLow,
	})
}

// phaseChanged celebrates a completed session. When the session is
// stopped early, the last round popup is taken down instead.
func (r *Rounds) phaseChanged(e session.PhaseChanged) {
	switch e.Current {
	case session.PhaseTerminated, session.PhaseFailed:
		r.dismiss()
		return
	case session.PhaseCompleted:
	default:
		return
	}
	r.send(Notification{
		Summary: "Cheers!",
		Body:    "The power hour is complete.",
		Expire:  roundExpire,
		Urgency: UrgencyNormal,
	})
}

func (r *Rounds) send(n Notification) {
	n.Replaces = r.lastID
	id, err := r.n.Notify(n)
	if err != nil {
		r.log.Warn().Err(err).Str("summary", n.Summary).Msg("notification failed")
		return
	}
	if id != 0 {
		r.lastID = id
	}
}

func (r *Rounds) dismiss() {
	if r.lastID == 0 {
		return
	}
	if err := r.n.Dismiss(r.lastID); err != nil {
		r.log.Debug().Err(err).Msg("dismiss notification")
	}
	r.lastID = 0
}
