// internal/player/interface.go
package player

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/powerhour/internal/tags"
)

var (
	// ErrUnsupportedFormat is returned by Load for files no decoder handles.
	ErrUnsupportedFormat = tags.ErrUnsupportedFormat

	// ErrNoOutputDevice means the audio output could not be opened.
	// The session treats it as fatal.
	ErrNoOutputDevice = errors.New("no audio output device")

	// ErrMissingExternalPlayer means the configured player command is not installed.
	ErrMissingExternalPlayer = errors.New("external player not found")

	// ErrNotLoaded is returned by Start when no track is loaded.
	ErrNotLoaded = errors.New("no track loaded")
)

// Interface is the audio collaborator the round scheduler drives.
//
// One track is active at a time: Load replaces whatever was loaded before,
// Start begins sound, Stop silences it. Done is closed when playback ends
// without Stop being called, either at end of stream or on failure; Err then
// reports the failure, or nil for a clean end.
type Interface interface {
	Load(path string) error
	Start(offset time.Duration) error
	Stop()
	State() State
	Position() time.Duration
	Done() <-chan struct{}
	Err() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Command)(nil)
	_ Interface = (*Mock)(nil)
)
