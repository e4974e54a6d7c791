// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams through github.com/mewkiz/flac.
package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audwave/pcm"
)

var ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

// frameParser is the part of flac.Stream the source needs.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float32
	pending    []float32
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.stream.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			if err := s.fill(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.done {
		return 0, io.EOF
	}

	return n, nil
}

// fill decodes the next frame into pending, interleaving the subframes.
func (s *source) fill() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("flac: %w", err)
	}
	if len(f.Subframes) < s.channels {
		return fmt.Errorf("flac: frame has %d subframes, want %d", len(f.Subframes), s.channels)
	}

	size := len(f.Subframes[0].Samples)
	buf := s.pending[:0]
	if cap(buf) < size*s.channels {
		buf = make([]float32, 0, size*s.channels)
	}
	for i := range size {
		for c := range s.channels {
			buf = append(buf, float32(f.Subframes[c].Samples[i])*s.scale)
		}
	}
	s.pending = buf

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}

	bits := int(stream.Info.BitsPerSample)
	if bits < 4 || bits > 32 {
		stream.Close()
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bits)
	}

	return &source{
		stream:     stream,
		sampleRate: int(stream.Info.SampleRate),
		channels:   int(stream.Info.NChannels),
		scale:      1 / float32(int64(1)<<(bits-1)),
	}, nil
}
