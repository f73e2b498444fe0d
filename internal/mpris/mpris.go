//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/library"
	"github.com/llehouerou/powerhour/internal/session"
)

// Adapter exposes a running session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter.
func New(s Session, log zerolog.Logger) (*Adapter, error) {
	a := &Adapter{log: log.With().Str("component", "mpris").Logger()}

	player := &playerAdapter{session: s, fsys: afero.NewOsFs()}
	a.server = server.NewServer(busName, &rootAdapter{session: s}, player)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	session Session
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	r.session.Quit()
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	session Session
	fsys    afero.Fs
}

func (p *playerAdapter) Next() error {
	p.session.Skip()
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil // Rounds only go forward
}

func (p *playerAdapter) Pause() error {
	if p.session.State().Phase == session.PhasePlaying {
		p.session.TogglePause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.session.TogglePause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.session.Quit()
	return nil
}

func (p *playerAdapter) Play() error {
	if p.session.State().Phase == session.PhasePaused {
		p.session.TogglePause()
	}
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.session.State().Phase), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.session.State()
	if s.Track.Path == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Track.Path)),
		Length:  types.Microseconds(s.RoundDuration.Microseconds()),
		Title:   roundTitle(s),
		Album:   s.Track.Album,
	}
	if s.Track.Artist != "" {
		meta.Artist = []string{s.Track.Artist}
	}
	if art := library.CoverArt(p.fsys, s.Track.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed via the session
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.session.State().Progress.RoundElapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.session.State().Phase.IsActive(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.session.State().Phase == session.PhasePaused, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.session.State().Phase.IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

func playbackStatus(p session.Phase) types.PlaybackStatus {
	switch statusOf(p) {
	case StatusPlaying:
		return types.PlaybackStatusPlaying
	case StatusPaused:
		return types.PlaybackStatusPaused
	case StatusStopped:
	}
	return types.PlaybackStatusStopped
}
