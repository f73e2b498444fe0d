package library

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/llehouerou/powerhour/internal/playlist"
)

// Source selects where tracks come from: an iTunes export when ITunesXML
// is set, otherwise a directory scan of Root.
type Source struct {
	Root      string
	ITunesXML string
}

// String describes the source for messages.
func (s Source) String() string {
	if s.ITunesXML != "" {
		return s.ITunesXML
	}
	return s.Root
}

// Collect returns the undescribed tracks of src. Metadata is resolved
// later, one track at a time, as the session draws them.
func Collect(ctx context.Context, fsys afero.Fs, src Source) ([]playlist.Track, error) {
	var (
		paths []string
		err   error
	)
	if src.ITunesXML != "" {
		paths, err = LoadITunesXML(fsys, src.ITunesXML)
	} else {
		paths, err = Discover(ctx, fsys, src.Root)
	}
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Wrapf(playlist.ErrNoPlayableTracks, "in %s", src)
	}
	return playlist.FromPaths(paths), nil
}
