package session

import "time"

// Stopwatch measures elapsed wall time with pauses and adjustments
// subtracted. The zero value is not usable; create one with NewStopwatch.
type Stopwatch struct {
	now      func() time.Time
	start    time.Time
	offset   time.Duration
	pausedAt time.Time
	paused   bool
}

// NewStopwatch returns a running stopwatch reading now for the time.
func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now, start: now()}
}

// Reset restarts the count at zero and clears any pause.
func (s *Stopwatch) Reset() {
	s.start = s.now()
	s.offset = 0
	s.paused = false
	s.pausedAt = time.Time{}
}

// Elapsed returns the time counted so far. It is frozen while paused.
func (s *Stopwatch) Elapsed() time.Duration {
	end := s.now()
	if s.paused {
		end = s.pausedAt
	}
	return max(end.Sub(s.start)-s.offset, 0)
}

// Pause freezes the count. Pausing twice keeps the first instant.
func (s *Stopwatch) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = s.now()
}

// Resume continues counting from where Pause froze it.
func (s *Stopwatch) Resume() {
	if !s.paused {
		return
	}
	s.offset += s.now().Sub(s.pausedAt)
	s.paused = false
	s.pausedAt = time.Time{}
}

// Discard removes d from the count.
func (s *Stopwatch) Discard(d time.Duration) {
	s.offset += d
}

// Credit adds d to the count. Negative values are ignored.
func (s *Stopwatch) Credit(d time.Duration) {
	if d > 0 {
		s.offset -= d
	}
}

// Clock holds the two counters a session shows: time into the current
// round and time into the whole session.
type Clock struct {
	Round   *Stopwatch
	Session *Stopwatch
}

// NewClock starts both counters at zero.
func NewClock(now func() time.Time) Clock {
	return Clock{Round: NewStopwatch(now), Session: NewStopwatch(now)}
}

// Pause freezes both counters.
func (c Clock) Pause() {
	c.Round.Pause()
	c.Session.Pause()
}

// Resume continues both counters.
func (c Clock) Resume() {
	c.Round.Resume()
	c.Session.Resume()
}
