package player

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the ALAC default frames-per-packet.
const alacFrameSize = 4096

// m4aStream plays AAC or ALAC audio from an MP4 container.
type m4aStream struct {
	box      *m4a.Reader
	closer   io.Closer
	codec    m4a.CodecType
	channels int
	width    int // bytes per ALAC sample
	length   int
	next     int // next container sample index
	err      error

	aac  *faad2.Decoder
	alac *alac.Alac

	pending [][2]float64
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	box, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "m4a")
	}

	rate := box.SampleRate()
	s := &m4aStream{
		box:      box,
		closer:   rc,
		codec:    box.Codec(),
		channels: int(box.Channels()),
		width:    int(box.SampleSize()) / 8,
		length:   int(box.Duration().Seconds() * float64(rate)),
	}
	format := beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}

	switch s.codec {
	case m4a.CodecAAC:
		dec, err := faad2.NewDecoder(context.Background())
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "aac decoder")
		}
		if err := dec.Init(context.Background(), box.CodecConfig()); err != nil {
			dec.Close(context.Background())
			return nil, beep.Format{}, errors.Wrap(err, "aac init")
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  int(rate),
			SampleSize:  int(box.SampleSize()),
			NumChannels: s.channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, errors.Wrap(err, "alac decoder")
		}
		s.alac = dec
		if s.width == 3 {
			format.Precision = 3
		}
	default:
		return nil, beep.Format{}, errors.Wrap(ErrUnsupportedFormat, "m4a codec")
	}

	return s, format, nil
}

func (s *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.box.SampleCount() {
			break
		}
		if err := s.decodeNext(); err != nil {
			s.err = err
			break
		}
	}
	return n, n > 0
}

func (s *m4aStream) decodeNext() error {
	packet, err := s.box.ReadSample(s.next)
	if err != nil {
		return err
	}
	s.next++

	if s.aac != nil {
		pcm, err := s.aac.Decode(context.Background(), packet)
		if err != nil {
			return err
		}
		s.pending = int16Frames(pcm, s.channels)
		return nil
	}

	raw := s.alac.Decode(packet)
	frames := make([][2]float64, len(raw)/(s.width*max(s.channels, 1)))
	s.pending = frames[:fillFrames(frames, raw, s.width, s.channels)]
	return nil
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.length }

func (s *m4aStream) Position() int {
	return int(s.box.SampleTime(s.next).Seconds() * float64(s.box.SampleRate()))
}

func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	at := time.Duration(float64(p) / float64(s.box.SampleRate()) * float64(time.Second))
	s.next = s.box.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	if s.aac != nil {
		s.aac.Close(context.Background())
	}
	return s.closer.Close()
}
