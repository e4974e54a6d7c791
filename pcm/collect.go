// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"fmt"
	"io"
)

// ReadAllMono16 drains src through a Resampler and a MonoMixer and returns
// the result as 16-bit samples at rate.
//
// bufferSize is the number of float32 values read per iteration; zero or a
// negative value selects 4096. The source is not closed.
func ReadAllMono16(src Source, rate, bufferSize int) ([]int16, error) {
	if rate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	mono := NewMonoMixer(NewResampler(src, rate))

	// two seconds is a reasonable first guess for bundled samples
	out := make([]int16, 0, rate*2)
	buf := make([]float32, bufferSize)
	empty := 0

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			out = append(out, FloatToSample(v))
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}
