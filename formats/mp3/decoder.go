// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III through github.com/hajimehoshi/go-mp3.
// The decoder always yields interleaved stereo.
package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audwave/pcm"
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	tmp        []int16
	odd        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return 2 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	// carry a dangling byte from the previous read
	off := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if n < 2 {
		if err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("mp3: %w", err)
		}
		s.odd = append(s.odd, s.buf[:n]...)
		return 0, nil
	}

	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
		n--
	}

	if cap(s.tmp) < n/2 {
		s.tmp = make([]int16, n/2)
	}
	s.tmp = s.tmp[:n/2]
	count := pcm.DecodeLE(s.tmp, s.buf[:n])
	for i, v := range s.tmp[:count] {
		dst[i] = pcm.SampleToFloat(v)
	}

	if err != nil && err != io.EOF {
		return count, fmt.Errorf("mp3: %w", err)
	}

	return count, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
