package session

import (
	"context"
	"sync"
)

// Event is a user command sent to a running game.
type Event int

const (
	EventSkip Event = iota
	EventTogglePause
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventSkip:
		return "skip"
	case EventTogglePause:
		return "toggle-pause"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Events is an unbounded FIFO of user commands. Push never blocks and no
// event is dropped; a single consumer reads with Next.
type Events struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	signal chan struct{}
}

// NewEvents creates an empty queue.
func NewEvents() *Events {
	return &Events{signal: make(chan struct{}, 1)}
}

// Push appends e. It returns false once the queue is closed.
func (q *Events) Push(e Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.queue = append(q.queue, e)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Next removes and returns the oldest event, blocking until one is
// available. It returns false when ctx ends or the queue is closed and
// drained.
func (q *Events) Next(ctx context.Context) (Event, bool) {
	for {
		q.mu.Lock()
		if len(q.queue) > 0 {
			e := q.queue[0]
			q.queue = q.queue[1:]
			q.mu.Unlock()
			return e, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return 0, false
		}

		select {
		case <-q.signal:
		case <-ctx.Done():
			return 0, false
		}
	}
}

// pending returns the number of queued events.
func (q *Events) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// Close rejects further pushes. Queued events can still be read.
func (q *Events) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}
