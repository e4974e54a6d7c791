// SPDX-License-Identifier: EPL-2.0

// Package raw decodes headerless little-endian 16-bit PCM, the format of the
// bundled playback sample.
package raw

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/pcm"
)

type source struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

func (s *source) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// a trailing odd byte cannot form a sample and is dropped
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("raw: %w", err)
	}

	samples := n / 2
	for i := range samples {
		dst[i] = pcm.SampleToFloat(int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8))
	}

	if s.eof {
		return samples, io.EOF
	}
	return samples, nil
}

// Decoder reads headerless PCM. Zero fields select 44100 Hz mono.
type Decoder struct {
	SampleRate int
	Channels   int
}

func (d Decoder) Decode(r io.Reader) (pcm.Source, error) {
	rate, channels := d.SampleRate, d.Channels
	if rate == 0 {
		rate = pcm.DefaultSampleRate
	}
	if channels == 0 {
		channels = 1
	}
	if rate < 0 || channels < 0 {
		return nil, ErrInvalidLayout
	}

	return &source{
		r:          r,
		sampleRate: rate,
		channels:   channels,
	}, nil
}

// ReadAll reads every sample from r. It is the direct path for mono sample
// resources that need no resampling.
func ReadAll(r io.Reader) ([]int16, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("raw: %w", err)
	}

	samples := make([]int16, len(data)/2)
	pcm.DecodeLE(samples, data)

	return samples, nil
}
