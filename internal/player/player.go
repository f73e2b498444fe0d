// Package player plays one track at a time for the round scheduler.
//
// Player decodes files in-process and plays them through the system audio
// output via beep. Command delegates each round to an external program.
package player

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

// resampleQuality is the beep.Resample quality used when a track's sample
// rate differs from the speaker's.
const resampleQuality = 4

// Player is the built-in audio backend.
type Player struct {
	log zerolog.Logger

	// mu is always acquired before the speaker lock, never after.
	mu          sync.Mutex
	level       float64
	speakerRate beep.SampleRate
	cur         *track
}

// track is one loaded file. The speaker goroutine only touches it through
// finish, so it has its own lock.
type track struct {
	path    string
	stream  beep.StreamSeekCloser
	format  beep.Format
	volume  *effects.Volume
	started bool

	done chan struct{}
	once sync.Once
	mu   sync.Mutex
	err  error
}

func (t *track) finish(err error) {
	t.once.Do(func() {
		t.mu.Lock()
		t.err = err
		t.mu.Unlock()
		close(t.done)
	})
}

func (t *track) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Option configures a Player.
type Option func(*Player)

// WithVolume sets the initial volume level (0.0 to 1.0).
func WithVolume(level float64) Option {
	return func(p *Player) { p.level = min(max(level, 0), 1) }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Player) { p.log = log }
}

// New creates a player. The audio output is opened on the first Start.
func New(opts ...Option) *Player {
	p := &Player{log: zerolog.Nop(), level: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load stops the current track and decodes path, ready for Start.
func (p *Player) Load(path string) error {
	p.Stop()

	stream, format, err := openStream(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.cur = &track{
		path:   path,
		stream: stream,
		format: format,
		done:   make(chan struct{}),
	}
	p.mu.Unlock()

	p.log.Debug().
		Str("path", path).
		Int("sample_rate", int(format.SampleRate)).
		Dur("length", format.SampleRate.D(stream.Len())).
		Msg("track loaded")
	return nil
}

// Start plays the loaded track from offset. An offset past the end of the
// track finishes immediately.
func (p *Player) Start(offset time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.cur
	if t == nil {
		return ErrNotLoaded
	}
	if t.started {
		return errors.Newf("track %s already started", t.path)
	}
	if err := p.initSpeaker(t.format.SampleRate); err != nil {
		return err
	}

	if offset > 0 {
		pos := t.format.SampleRate.N(offset)
		if n := t.stream.Len(); n > 0 && pos > n {
			pos = n
		}
		if err := t.stream.Seek(pos); err != nil {
			return errors.Wrapf(err, "seek to %s", offset)
		}
	}

	var s beep.Streamer = t.stream
	if t.format.SampleRate != p.speakerRate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, p.speakerRate, s)
	}
	t.volume = &effects.Volume{
		Streamer: &beep.Ctrl{Streamer: s},
		Base:     2,
		Volume:   levelToVolume(p.level),
		Silent:   p.level == 0,
	}
	t.started = true

	speaker.Play(beep.Seq(t.volume, beep.Callback(func() {
		t.finish(t.stream.Err())
	})))
	return nil
}

func (p *Player) initSpeaker(rate beep.SampleRate) error {
	if p.speakerRate != 0 {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return errors.Mark(errors.Wrap(err, "init speaker"), ErrNoOutputDevice)
	}
	p.speakerRate = rate
	p.log.Debug().Int("sample_rate", int(rate)).Msg("speaker initialized")
	return nil
}

// Stop silences and releases the current track. Done is not closed by Stop.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.cur
	if t == nil {
		return
	}
	p.cur = nil
	if t.started {
		speaker.Clear()
	}
	if err := t.stream.Close(); err != nil {
		p.log.Debug().Err(err).Str("path", t.path).Msg("close stream")
	}
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch t := p.cur; {
	case t == nil:
		return Stopped
	case !t.started:
		return Loaded
	case t.finished():
		return Finished
	default:
		return Playing
	}
}

// Position returns the playback position within the current track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.cur
	if t == nil {
		return 0
	}
	if t.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return t.format.SampleRate.D(t.stream.Position())
}

// Done returns a channel closed when the current track ends on its own.
// It is nil when nothing is loaded.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return nil
	}
	return p.cur.done
}

// Err returns the decode error that ended the current track, if any.
func (p *Player) Err() error {
	p.mu.Lock()
	t := p.cur
	p.mu.Unlock()
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
