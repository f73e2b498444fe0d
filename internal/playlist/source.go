package playlist

import (
	"math/rand/v2"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrNoPlayableTracks is returned when the source has nothing left to draw.
var ErrNoPlayableTracks = errors.New("no playable tracks")

// Source hands out tracks in a shuffled draw order. Every track is drawn
// once per pass; when the pass is exhausted a fresh permutation of the
// full set starts the next one.
//
// Source is not safe for concurrent use.
type Source struct {
	all       []Track
	remaining []Track // next draw is remaining[0]
	rng       *rand.Rand
}

// Option configures a Source.
type Option func(*Source)

// WithRand sets the shuffle source. Tests use a seeded generator.
func WithRand(r *rand.Rand) Option {
	return func(s *Source) {
		s.rng = r
	}
}

// NewSource creates a source over tracks, dropping duplicate paths.
func NewSource(tracks []Track, opts ...Option) *Source {
	s := &Source{
		all: lo.UniqBy(tracks, func(t Track) string { return t.Path }),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // shuffling, not crypto
	}
	return s
}

// Fetch removes and returns the next track, reshuffling the full set
// when the draw order is empty.
func (s *Source) Fetch() (Track, error) {
	if len(s.remaining) == 0 {
		if len(s.all) == 0 {
			return Track{}, ErrNoPlayableTracks
		}
		s.reshuffle()
	}
	t := s.remaining[0]
	s.remaining = s.remaining[1:]
	return t, nil
}

// Requeue puts a fetched track back at the front of the draw order so
// the next Fetch returns it. A track that has since been discarded is
// ignored.
func (s *Source) Requeue(t Track) {
	if !s.contains(t.Path) {
		return
	}
	s.remaining = slices.Insert(s.remaining, 0, t)
}

// Discard removes a track from the source entirely. Used for files that
// fail to load, so a broken collection runs dry instead of retrying
// forever.
func (s *Source) Discard(path string) {
	match := func(t Track) bool { return t.Path == path }
	s.all = slices.DeleteFunc(s.all, match)
	s.remaining = slices.DeleteFunc(s.remaining, match)
}

// Len returns the size of the full track set.
func (s *Source) Len() int {
	return len(s.all)
}

// left returns how many tracks are left in the current pass.
func (s *Source) left() int {
	return len(s.remaining)
}

func (s *Source) reshuffle() {
	s.remaining = slices.Clone(s.all)
	s.rng.Shuffle(len(s.remaining), func(i, j int) {
		s.remaining[i], s.remaining[j] = s.remaining[j], s.remaining[i]
	})
}

func (s *Source) contains(path string) bool {
	return slices.ContainsFunc(s.all, func(t Track) bool { return t.Path == path })
}
