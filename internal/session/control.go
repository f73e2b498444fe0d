package session

import (
	"context"
	"sync/atomic"
)

// controlFlags is written by the control goroutine and read by the
// scheduling goroutine.
type controlFlags struct {
	terminate atomic.Bool
	skip      atomic.Bool
	playing   atomic.Bool

	// wake has one slot so a flag change interrupts the current wait
	// without the writer ever blocking.
	wake chan struct{}
}

func newControlFlags() *controlFlags {
	f := &controlFlags{wake: make(chan struct{}, 1)}
	f.playing.Store(true)
	return f
}

func (f *controlFlags) notify() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// apply updates the flags for e and reports whether the control loop
// should stop.
func (f *controlFlags) apply(e Event) bool {
	switch e {
	case EventSkip:
		f.skip.Store(true)
	case EventTogglePause:
		f.playing.Store(!f.playing.Load())
	case EventQuit:
		f.terminate.Store(true)
	}
	f.notify()
	return e == EventQuit
}

// control drains events into flags until Quit or ctx cancellation, which
// counts as Quit.
func (g *Game) control(ctx context.Context) {
	defer g.events.Close()
	for {
		e, ok := g.events.Next(ctx)
		if !ok {
			g.flags.terminate.Store(true)
			g.flags.notify()
			return
		}
		g.log.Debug().Stringer("event", e).Msg("control event")
		if g.flags.apply(e) {
			return
		}
	}
}
