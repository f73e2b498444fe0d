// Package playlist holds the tracks a session draws from.
package playlist

import (
	"path/filepath"
	"strings"
	"time"
)

// Track is a playable file plus whatever metadata has been resolved for it.
// Only Path is required; it identifies the track.
type Track struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration // 0 if unknown
}

// Described reports whether metadata has been resolved for the track.
func (t Track) Described() bool {
	return t.Title != ""
}

// DisplayTitle returns the title, or the file name without extension.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NowPlaying formats the track as "Artist - Title", or just the title
// when the artist is unknown.
func (t Track) NowPlaying() string {
	if t.Artist == "" {
		return t.DisplayTitle()
	}
	return t.Artist + " - " + t.DisplayTitle()
}

// FromPaths wraps bare paths as undescribed tracks.
func FromPaths(paths []string) []Track {
	tracks := make([]Track, len(paths))
	for i, p := range paths {
		tracks[i] = Track{Path: p}
	}
	return tracks
}
