// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"fmt"
	"io"
)

// lowpassAlpha is the coefficient of the one-pole filter applied to source
// frames when downsampling.
const lowpassAlpha float32 = 0.5

const maxEmptyReads = 8

// Resampler converts a Source to another sample rate using Catmull-Rom cubic
// interpolation. It keeps the channel layout of its source. When the rates
// already match, samples pass through untouched.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // source frames advanced per output frame

	// win holds four consecutive source frames: t-1, t0, t+1, t+2.
	// real marks which of them came from the source rather than edge padding.
	win    [4][]float32
	real   [4]bool
	frac   float64
	primed bool

	buf     []float32
	bufPos  int
	bufLen  int
	srcDone bool

	lowpass bool
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		channels: channels,
		step:     float64(src.SampleRate()) / float64(dstRate),
		buf:      make([]float32, 4096-4096%channels),
		state:    make([]float32, channels),
	}
	r.lowpass = r.step > 1
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (r *Resampler) passthrough() bool {
	return r.src.SampleRate() == r.rate
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.rate <= 0 || r.src.SampleRate() <= 0 {
		return 0, ErrInvalidRate
	}
	if r.passthrough() {
		return r.src.ReadSamples(dst)
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = cubic(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}

// prime loads the first frames. The frame before the start duplicates t0.
func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	r.real[1] = true

	copy(r.win[0], r.win[1])
	r.real[0] = true

	for i := 2; i < 4; i++ {
		if err := r.load(i); err != nil {
			return err
		}
	}
	r.primed = true

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	first := r.win[0]
	copy(r.win[:], r.win[1:])
	r.win[3] = first
	copy(r.real[:], r.real[1:])

	return r.load(3)
}

// load fills window slot i from the source, or repeats slot i-1 past the end.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.win[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[i], r.win[i-1])
	}
	r.real[i] = ok

	return nil
}

// nextFrame copies one source frame into dst, filtering it when downsampling.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.bufPos >= r.bufLen {
		if r.srcDone {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.buf)
		r.bufPos = 0
		r.bufLen = n - n%r.channels

		switch {
		case errors.Is(err, io.EOF):
			r.srcDone = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case r.bufLen == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, ErrNoProgress
			}
		}
	}

	copy(dst, r.buf[r.bufPos:r.bufPos+r.channels])
	r.bufPos += r.channels

	if r.lowpass {
		if !r.primed && !r.real[1] {
			// seed the filter with the first frame to avoid a warm-up ramp
			copy(r.state, dst)
		}
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}
