// Package session runs a power hour: a fixed number of fixed-length rounds,
// each playing a track drawn from a shuffled source, with pause, skip and
// quit arriving as events.
//
// A Game runs two goroutines. The control goroutine turns events into
// atomic flags; the scheduling goroutine owns the player, the source and
// the clocks, and publishes a State snapshot on every poll.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/powerhour/internal/player"
	"github.com/llehouerou/powerhour/internal/playlist"
)

var (
	// ErrTrackLoadFailed wraps player Load errors. The track is discarded
	// and the round retried.
	ErrTrackLoadFailed = errors.New("track load failed")

	// ErrPlaybackStartFailed wraps player Start errors and tracks rejected
	// as too short. The track is discarded and the round retried.
	ErrPlaybackStartFailed = errors.New("playback start failed")

	// ErrPlaybackFailed wraps errors reported by the player mid-round.
	ErrPlaybackFailed = errors.New("playback failed")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("session already started")
)

// Describer fills in track metadata. library.Catalog implements it.
type Describer interface {
	Describe(t playlist.Track) (playlist.Track, error)
}

// Game is one power hour session.
type Game struct {
	id        string
	cfg       Config
	src       *playlist.Source
	player    player.Interface
	describer Describer
	now       func() time.Time
	log       zerolog.Logger

	events *Events
	flags  *controlFlags
	clock  Clock

	mu    sync.RWMutex
	state State

	subsMu sync.Mutex
	subs   []*Subscription
	ended  bool

	started atomic.Bool
	active  atomic.Bool
	done    chan struct{}
	err     error
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now for the session counters.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithDescriber resolves track metadata when a track is drawn.
func WithDescriber(d Describer) Option {
	return func(g *Game) { g.describer = d }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) { g.log = log }
}

// New creates a game. It fails on an invalid config and on an empty source.
func New(cfg Config, src *playlist.Source, p player.Interface, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil || src.Len() == 0 {
		return nil, playlist.ErrNoPlayableTracks
	}

	g := &Game{
		id:     uuid.NewString(),
		cfg:    cfg,
		src:    src,
		player: p,
		now:    time.Now,
		log:    zerolog.Nop(),
		events: NewEvents(),
		flags:  newControlFlags(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With().Str("session_id", g.id).Logger()
	g.clock = NewClock(g.now)
	g.state = State{
		Phase:         PhaseIdle,
		Rounds:        cfg.Rounds,
		RoundDuration: cfg.RoundDuration,
	}
	return g, nil
}

// Start launches the control and scheduling goroutines. Cancelling ctx
// has the same effect as Quit.
func (g *Game) Start(ctx context.Context) error {
	if !g.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	g.active.Store(true)

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Go(func() { g.control(ctx) })

	go func() {
		err := g.run()
		g.active.Store(false)
		cancel()
		wg.Wait()

		g.err = err
		g.closeSubscriptions()
		close(g.done)
	}()
	return nil
}

// Wait blocks until the game ends and returns the fatal error, if any.
// Quitting is not an error.
func (g *Game) Wait() error {
	<-g.done
	return g.err
}

// Done is closed when the game has ended.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Active reports whether the scheduling goroutine is running.
func (g *Game) Active() bool {
	return g.active.Load()
}

// State returns a copy of the latest snapshot.
func (g *Game) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Skip ends the current round early. It returns false once the game no
// longer accepts commands.
func (g *Game) Skip() bool { return g.events.Push(EventSkip) }

// TogglePause pauses or resumes the session.
func (g *Game) TogglePause() bool { return g.events.Push(EventTogglePause) }

// Quit ends the session.
func (g *Game) Quit() bool { return g.events.Push(EventQuit) }

// Subscribe returns a subscription to round and phase notifications.
// Subscribing after the game ended returns a closed subscription.
func (g *Game) Subscribe() *Subscription {
	sub := newSubscription()
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	if g.ended {
		sub.close()
		return sub
	}
	g.subs = append(g.subs, sub)
	return sub
}

func (g *Game) closeSubscriptions() {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	g.ended = true
	for _, sub := range g.subs {
		sub.close()
	}
	g.subs = nil
}

func (g *Game) broadcast(fn func(*Subscription)) {
	g.subsMu.Lock()
	defer g.subsMu.Unlock()
	for _, sub := range g.subs {
		fn(sub)
	}
}

// run is the scheduling goroutine.
func (g *Game) run() error {
	defer g.player.Stop()

	g.log.Info().
		Int("rounds", g.cfg.Rounds).
		Dur("round_duration", g.cfg.RoundDuration).
		Int("tracks", g.src.Len()).
		Msg("session started")

	// Both clocks only run while a track plays. Between attempts they are
	// frozen so fetching, describing and loading are not counted.
	g.clock.Session.Reset()
	g.clock.Round.Reset()
	g.clock.Pause()
	g.setPhase(PhasePlaying)

	round := 0
	// carry is set when the next attempt continues the current round's
	// clock instead of starting a new round.
	carry := false

	for round < g.cfg.Rounds {
		if !g.flags.playing.Load() {
			if !g.waitWhilePaused(round) {
				return g.end(PhaseTerminated, round, nil)
			}
		}
		if g.flags.terminate.Load() {
			return g.end(PhaseTerminated, round, nil)
		}

		g.setPhase(PhasePlaying)

		exit, t, err := g.playRound(round, carry)
		g.clock.Pause()
		g.player.Stop()
		g.broadcast(func(s *Subscription) {
			s.sendEnded(RoundEnded{Number: round + 1, Track: t, Exit: exit})
		})

		switch exit {
		case ExitCompleted:
			if over := g.clock.Round.Elapsed() - g.cfg.RoundDuration; over > 0 {
				g.clock.Session.Discard(over)
			}
			round++
			g.newRound()
			carry = false
		case ExitSkipped:
			g.clock.Session.Discard(g.clock.Round.Elapsed())
			if g.cfg.SkipAdvancesRound {
				g.clock.Session.Credit(g.cfg.RoundDuration)
				round++
			}
			g.newRound()
			carry = false
		case ExitPaused:
			carry = true
		case ExitTerminated:
			return g.end(PhaseTerminated, round, nil)
		case ExitFailed:
			if errors.Is(err, playlist.ErrNoPlayableTracks) || errors.Is(err, player.ErrNoOutputDevice) {
				return g.end(PhaseFailed, round, err)
			}
			g.log.Warn().Err(err).Str("path", t.Path).Int("round", round+1).Msg("track failed, retrying round")
			carry = true
		}
		if exit != ExitFailed {
			g.flags.skip.Store(false)
		}

		g.log.Debug().
			Stringer("exit", exit).
			Int("round", round).
			Dur("session_elapsed", g.clock.Session.Elapsed()).
			Msg("round attempt ended")
		g.publish(round)
	}

	return g.end(PhaseCompleted, round, nil)
}

// newRound zeroes the round clock and keeps it frozen until the next
// track starts, so a snapshot taken in between shows an empty round.
func (g *Game) newRound() {
	g.clock.Round.Reset()
	g.clock.Round.Pause()
}

// waitWhilePaused blocks until playing or terminate is set. It returns
// false on terminate.
func (g *Game) waitWhilePaused(round int) bool {
	g.clock.Pause()
	g.setPhase(PhasePaused)
	g.publish(round)

	ticker := time.NewTicker(g.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if g.flags.terminate.Load() {
			return false
		}
		if g.flags.playing.Load() {
			return true
		}
		select {
		case <-ticker.C:
		case <-g.flags.wake:
		}
	}
}

// playRound makes one attempt at playing a round.
func (g *Game) playRound(round int, resumed bool) (Exit, playlist.Track, error) {
	t, err := g.src.Fetch()
	if err != nil {
		return ExitFailed, t, err
	}
	t = g.describe(t)

	if minLen := g.cfg.MinTrackLength; minLen > 0 && t.Duration > 0 && t.Duration < minLen {
		g.src.Discard(t.Path)
		return ExitFailed, t, errors.Wrapf(ErrPlaybackStartFailed,
			"%s is %s long, shorter than %s", t.Path, t.Duration.Round(time.Second), minLen)
	}

	if err := g.player.Load(t.Path); err != nil {
		g.src.Discard(t.Path)
		return ExitFailed, t, errors.Wrapf(errors.Mark(err, ErrTrackLoadFailed), "load %s", t.Path)
	}

	offset := g.clock.Round.Elapsed()
	if err := g.player.Start(offset); err != nil {
		g.src.Discard(t.Path)
		return ExitFailed, t, errors.Wrapf(errors.Mark(err, ErrPlaybackStartFailed), "start %s", t.Path)
	}
	g.clock.Resume()

	g.mu.Lock()
	g.state.Track = t
	g.mu.Unlock()
	g.publish(round)
	g.broadcast(func(s *Subscription) {
		s.sendStarted(RoundStarted{
			Number:  round + 1,
			Rounds:  g.cfg.Rounds,
			Track:   t,
			Offset:  offset,
			Resumed: resumed,
		})
	})
	g.log.Info().
		Int("round", round+1).
		Str("path", t.Path).
		Str("track", t.NowPlaying()).
		Dur("offset", offset).
		Msg("round started")

	ticker := time.NewTicker(g.cfg.PollInterval)
	defer ticker.Stop()
	finished := g.player.Done()

	for {
		switch {
		case g.flags.terminate.Load():
			return ExitTerminated, t, nil
		case g.clock.Round.Elapsed() >= g.cfg.RoundDuration:
			return ExitCompleted, t, nil
		case g.flags.skip.Load():
			return ExitSkipped, t, nil
		case !g.flags.playing.Load():
			g.clock.Pause()
			g.src.Requeue(t)
			g.setPhase(PhasePaused)
			return ExitPaused, t, nil
		}
		g.publish(round)

		select {
		case <-ticker.C:
		case <-g.flags.wake:
		case <-finished:
			finished = nil
			if err := g.player.Err(); err != nil {
				g.src.Discard(t.Path)
				return ExitFailed, t, errors.Wrapf(errors.Mark(err, ErrPlaybackFailed), "play %s", t.Path)
			}
			g.log.Debug().Str("path", t.Path).Msg("track ended before the round")
		}
	}
}

func (g *Game) describe(t playlist.Track) playlist.Track {
	if g.describer == nil || t.Described() {
		return t
	}
	d, err := g.describer.Describe(t)
	if err != nil {
		g.log.Debug().Err(err).Str("path", t.Path).Msg("describe track")
		return t
	}
	return d
}

// publish copies the clocks into the snapshot.
func (g *Game) publish(round int) {
	p := Progress{
		Round:          round,
		RoundElapsed:   min(g.clock.Round.Elapsed(), g.cfg.RoundDuration),
		SessionElapsed: min(g.clock.Session.Elapsed(), g.cfg.Total()),
	}
	if round >= g.cfg.Rounds {
		p.RoundElapsed = 0
	}
	g.mu.Lock()
	g.state.Progress = p
	g.mu.Unlock()
}

func (g *Game) setPhase(p Phase) {
	g.mu.Lock()
	prev := g.state.Phase
	g.state.Phase = p
	g.mu.Unlock()
	if prev == p {
		return
	}
	g.broadcast(func(s *Subscription) {
		s.sendPhase(PhaseChanged{Previous: prev, Current: p})
	})
}

func (g *Game) end(phase Phase, round int, err error) error {
	g.clock.Pause()
	g.publish(round)
	g.mu.Lock()
	g.state.Err = err
	g.mu.Unlock()
	g.setPhase(phase)

	ev := g.log.Info()
	if err != nil {
		ev = g.log.Error().Err(err)
	}
	ev.Stringer("phase", phase).
		Int("rounds_played", round).
		Dur("session_elapsed", g.clock.Session.Elapsed()).
		Msg("session ended")
	return err
}
