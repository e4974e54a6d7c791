// SPDX-License-Identifier: EPL-2.0

package pcm

import "io"

// SliceSource serves in-memory 16-bit samples as a Source.
type SliceSource struct {
	samples    []int16
	sampleRate int
	channels   int
	pos        int
}

// NewSliceSource wraps interleaved samples. The slice is read, never written.
func NewSliceSource(samples []int16, sampleRate, channels int) *SliceSource {
	if channels <= 0 {
		channels = 1
	}

	return &SliceSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) Close() error    { return nil }

// Rewind restarts the stream from the first sample.
func (s *SliceSource) Rewind() { s.pos = 0 }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.samples)-s.pos)
	for i, v := range s.samples[s.pos : s.pos+n] {
		dst[i] = SampleToFloat(v)
	}
	s.pos += n

	if s.pos >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}
