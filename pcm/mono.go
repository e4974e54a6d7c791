// SPDX-License-Identifier: EPL-2.0

package pcm

import "fmt"

// MonoMixer down-mixes any Source to one channel by averaging each frame.
type MonoMixer struct {
	src     Source
	scratch []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono frames.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels <= 1 {
		return m.src.ReadSamples(dst)
	}

	// scratch only grows so steady-state reads do not allocate
	need := len(dst) * channels
	if cap(m.scratch) < need {
		m.scratch = make([]float32, need)
	}
	buf := m.scratch[:need]

	n, err := m.src.ReadSamples(buf)
	frames := n / channels

	if channels == 2 {
		for f := range frames {
			dst[f] = (buf[2*f] + buf[2*f+1]) * 0.5
		}
		return frames, err
	}

	inv := 1 / float32(channels)
	for f := range frames {
		var sum float32
		for _, v := range buf[f*channels : (f+1)*channels] {
			sum += v
		}
		dst[f] = sum * inv
	}

	return frames, err
}
