package library

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// coverNames lists album art file names in priority order. Matching is
// case-insensitive.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// CoverArt returns the album art file next to a track, or "" if there is
// none or the directory cannot be read.
func CoverArt(fsys afero.Fs, trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return ""
	}

	best, bestRank := "", len(coverNames)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		for rank, name := range coverNames[:bestRank] {
			if lower == name {
				best, bestRank = e.Name(), rank
				break
			}
		}
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}
