// Package tags reads track metadata and audio stream properties from
// music files. It covers the formats a power hour plays: MP3, FLAC,
// M4A/MP4 (AAC and ALAC) and WAV.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtWAV  = ".wav"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag contains the metadata shown while a track plays.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, FLAC, AAC, ALAC, WAV
	SampleRate int
}

// FileInfo combines Tag and AudioInfo for a complete file description.
type FileInfo struct {
	Tag
	AudioInfo
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtM4A, ExtMP4, ExtWAV:
		return true
	}
	return false
}

// FromPath builds a Tag from the file path alone, for files without
// readable tags. The usual Artist/Album/NN Title.ext layout is assumed:
// the file name becomes the title, its directory the album and the
// directory above that the artist.
func FromPath(path string) *Tag {
	base := filepath.Base(path)
	t := &Tag{
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}

	dir := filepath.Dir(path)
	if album := filepath.Base(dir); album != "." && album != string(filepath.Separator) {
		t.Album = album
		if artist := filepath.Base(filepath.Dir(dir)); artist != "." && artist != string(filepath.Separator) {
			t.Artist = artist
		}
	}
	return t
}

// fillMissing copies path-derived values into empty fields.
func (t *Tag) fillMissing() {
	if t.Title != "" && t.Artist != "" {
		return
	}
	fallback := FromPath(t.Path)
	if t.Title == "" {
		t.Title = fallback.Title
	}
	if t.Artist == "" && t.Album == "" {
		t.Artist = fallback.Artist
		t.Album = fallback.Album
	}
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}

// parseYear extracts the year from "YYYY" or "YYYY-MM-DD".
func parseYear(s string) int {
	if len(s) > 4 {
		s = s[:4]
	}
	y, _ := strconv.Atoi(s)
	return y
}
