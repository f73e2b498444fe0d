package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties.
// Missing title or artist are filled in from the path.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtM4A, ExtMP4, ExtFLAC:
			// dhowden/tag can't parse some ffmpeg-created M4A or FLAC files
			return readWithTaglib(path)
		}
		return nil, err
	}

	track, _ := m.Track()
	t := &Tag{
		Path:        path,
		Title:       strings.TrimSpace(m.Title()),
		Artist:      strings.TrimSpace(m.Artist()),
		Album:       strings.TrimSpace(m.Album()),
		Genre:       m.Genre(),
		Year:        m.Year(),
		TrackNumber: track,
	}
	if t.Artist == "" {
		t.Artist = strings.TrimSpace(m.AlbumArtist())
	}
	t.fillMissing()
	return t, nil
}

// ReadWithAudio reads both tag metadata and audio stream properties.
// Files without readable tags get path-derived metadata.
func ReadWithAudio(path string) (*FileInfo, error) {
	t, err := Read(path)
	if err != nil {
		t = FromPath(path)
	}

	audio, err := ReadAudioInfo(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Tag:       *t,
		AudioInfo: *audio,
	}, nil
}
