package tags

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// ErrUnsupportedFormat is returned for files IsMusicFile rejects.
var ErrUnsupportedFormat = errors.New("unsupported format")

// prober reads stream properties from an open file positioned at 0.
type prober func(f *os.File) (AudioInfo, error)

var probers = map[string]prober{
	ExtMP3:  probeMP3,
	ExtFLAC: probeFLAC,
	ExtM4A:  probeM4A,
	ExtMP4:  probeM4A,
	ExtWAV: func(f *os.File) (AudioInfo, error) {
		return probeBeep(f, "WAV", wav.Decode)
	},
}

// ReadAudioInfo reads duration, codec and sample rate without decoding
// the whole stream where the container allows it.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	probe, ok := probers[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := probe(f)
	if err != nil {
		return nil, errors.Wrap(err, strings.TrimPrefix(ext, "."))
	}
	return &info, nil
}

func samplesToDuration(samples int64, rate int) time.Duration {
	if rate <= 0 || samples <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

func probeMP3(f *os.File) (AudioInfo, error) {
	d, err := mp3.NewDecoder(f)
	if err != nil {
		return AudioInfo{}, err
	}
	rate := d.SampleRate()
	if rate == 0 {
		return AudioInfo{}, errors.New("invalid sample rate")
	}
	return AudioInfo{
		Duration:   samplesToDuration(int64(d.SampleCount()), rate),
		Format:     "MP3",
		SampleRate: rate,
	}, nil
}

// probeFLAC reads the STREAMINFO block. Files that go-flac cannot parse,
// usually because of a prepended ID3 tag, fall back to beep's decoder.
func probeFLAC(f *os.File) (AudioInfo, error) {
	if meta, err := goflac.ParseMetadata(f); err == nil {
		if si, err := meta.GetStreamInfo(); err == nil {
			return AudioInfo{
				Duration:   samplesToDuration(si.SampleCount, si.SampleRate),
				Format:     "FLAC",
				SampleRate: si.SampleRate,
			}, nil
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return AudioInfo{}, err
	}
	if err := SkipID3v2(f); err != nil {
		return AudioInfo{}, err
	}
	return probeBeep(f, "FLAC", flac.Decode)
}

func probeM4A(f *os.File) (AudioInfo, error) {
	c, err := m4a.Open(f)
	if err != nil {
		return AudioInfo{}, err
	}
	info := AudioInfo{
		Duration:   c.Duration(),
		Format:     "M4A",
		SampleRate: int(c.SampleRate()),
	}
	switch c.Codec() {
	case m4a.CodecAAC:
		info.Format = "AAC"
	case m4a.CodecALAC:
		info.Format = "ALAC"
	case m4a.CodecUnknown:
	}
	return info, nil
}

// probeBeep decodes just the header with a beep decoder and asks the
// stream for its length.
func probeBeep(r io.Reader, name string, decode func(io.Reader) (beep.StreamSeekCloser, beep.Format, error)) (AudioInfo, error) {
	s, format, err := decode(r)
	if err != nil {
		return AudioInfo{}, err
	}
	defer s.Close()
	return AudioInfo{
		Duration:   format.SampleRate.D(s.Len()),
		Format:     name,
		SampleRate: int(format.SampleRate),
	}, nil
}

// SkipID3v2 moves r past an ID3v2 tag at its start, or rewinds it when
// there is none. FLAC files are sometimes written with one prepended.
func SkipID3v2(r io.ReadSeeker) error {
	var header [10]byte
	n, err := io.ReadFull(r, header[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe: 7 bits per byte.
	var size int64
	for _, b := range header[6:10] {
		size = size<<7 | int64(b&0x7f)
	}
	_, err = r.Seek(int64(len(header))+size, io.SeekStart)
	return err
}
