// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"
	"testing"
)

func TestFloatToSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToSample(tt.input); got != tt.want {
				t.Errorf("FloatToSample(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSampleFloatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []int16{math.MinInt16, -12345, -1, 0, 1, 777, math.MaxInt16} {
		if got := FloatToSample(SampleToFloat(s)); got != s {
			t.Errorf("FloatToSample(SampleToFloat(%d)) = %d", s, got)
		}
	}
}

func TestDecodeLE(t *testing.T) {
	t.Parallel()

	src := []byte{0x01, 0x00, 0xff, 0xff, 0xff, 0x7f, 0x00, 0x80, 0x42}
	dst := make([]int16, 8)

	n := DecodeLE(dst, src)
	if n != 4 {
		t.Fatalf("DecodeLE() n = %d, want 4", n)
	}

	want := []int16{1, -1, math.MaxInt16, math.MinInt16}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], w)
		}
	}
}

func TestDecodeLE_ShortDst(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 1)
	if n := DecodeLE(dst, []byte{1, 0, 2, 0}); n != 1 || dst[0] != 1 {
		t.Errorf("DecodeLE() = %d, dst = %v", n, dst)
	}
}

func TestAppendLE(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1, -1, math.MaxInt16, math.MinInt16}
	b := AppendLE(nil, samples)

	if len(b) != 2*len(samples) {
		t.Fatalf("len = %d, want %d", len(b), 2*len(samples))
	}

	back := make([]int16, len(samples))
	DecodeLE(back, b)
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, back[i], samples[i])
		}
	}
}

func TestAudioLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		samples, rate, channels int
		want                    int
	}{
		{name: "one second mono", samples: 44100, rate: 44100, channels: 1, want: 1000},
		{name: "one second stereo", samples: 88200, rate: 44100, channels: 2, want: 1000},
		{name: "truncates", samples: 44099, rate: 44100, channels: 1, want: 999},
		{name: "half second 8k", samples: 4000, rate: 8000, channels: 1, want: 500},
		{name: "zero rate", samples: 100, rate: 0, channels: 1, want: 0},
		{name: "zero channels", samples: 100, rate: 8000, channels: 0, want: 0},
		{name: "empty", samples: 0, rate: 44100, channels: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := AudioLength(tt.samples, tt.rate, tt.channels); got != tt.want {
				t.Errorf("AudioLength(%d, %d, %d) = %d, want %d",
					tt.samples, tt.rate, tt.channels, got, tt.want)
			}
		})
	}
}

func BenchmarkFloatToSample(b *testing.B) {
	buf := make([]float32, 8000)
	out := make([]int16, len(buf))
	for i := range buf {
		buf[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ReportAllocs()
	for range b.N {
		for i, v := range buf {
			out[i] = FloatToSample(v)
		}
	}
}
