package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/powerhour/internal/tags"
)

// openStream opens path with the decoder matching its extension.
// The returned stream owns the file.
func openStream(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !tags.IsMusicFile(path) {
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case tags.ExtMP3:
		stream, format, err = decodeMP3(f)
	case tags.ExtFLAC:
		if err = tags.SkipID3v2(f); err == nil {
			stream, format, err = flac.Decode(f)
		}
	case tags.ExtWAV:
		stream, format, err = wav.Decode(f)
	case tags.ExtM4A, tags.ExtMP4:
		stream, format, err = decodeM4A(f)
	default:
		err = errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return stream, format, nil
}
