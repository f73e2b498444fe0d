// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// StartCall records one Mock.Start.
type StartCall struct {
	Path   string
	Offset time.Duration
}

// Mock is a test double for Player. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	loadErrs  map[string]error
	startErrs map[string]error
	loads     []string
	starts    []StartCall
	stops     int

	path    string
	state   State
	started time.Time
	offset  time.Duration
	done    chan struct{}
	err     error
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		loadErrs:  make(map[string]error),
		startErrs: make(map[string]error),
	}
}

// FailLoad makes Load(path) return err. An empty path matches every file.
func (m *Mock) FailLoad(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErrs[path] = err
}

// FailStart makes Start return err while path is loaded. An empty path
// matches every file.
func (m *Mock) FailStart(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErrs[path] = err
}

// Finish ends the playing track as if the stream ran out, with err as the
// failure cause.
func (m *Mock) Finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Playing {
		return
	}
	m.state = Finished
	m.err = err
	close(m.done)
}

func (m *Mock) Load(path string) error {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loads = append(m.loads, path)
	if err := lookup(m.loadErrs, path); err != nil {
		return err
	}
	m.path = path
	m.state = Loaded
	return nil
}

func (m *Mock) Start(offset time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Loaded {
		return ErrNotLoaded
	}
	m.starts = append(m.starts, StartCall{Path: m.path, Offset: offset})
	if err := lookup(m.startErrs, m.path); err != nil {
		return err
	}
	m.state = Playing
	m.started = time.Now()
	m.offset = offset
	m.done = make(chan struct{})
	m.err = nil
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Stopped {
		return
	}
	m.stops++
	m.state = Stopped
	m.path = ""
	m.done = nil
	m.err = nil
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Playing {
		return 0
	}
	return m.offset + time.Since(m.started)
}

func (m *Mock) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Mock) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Loads returns the paths passed to Load, in order.
func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

// Starts returns every Start call, including failed ones.
func (m *Mock) Starts() []StartCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]StartCall(nil), m.starts...)
}

// Stops returns how many times Stop released a loaded track.
func (m *Mock) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// Path returns the loaded path, or "" when stopped.
func (m *Mock) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

func lookup(errs map[string]error, path string) error {
	if err, ok := errs[path]; ok {
		return err
	}
	return errs[""]
}
