// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the 16-bit PCM primitives shared by the format decoders,
// the waveform code and the device controllers.
//
// Decoders produce a Source of interleaved float32 samples. A Source is turned
// into mono 16-bit samples at a fixed rate with ReadAllMono16, which chains a
// Resampler and a MonoMixer:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	samples, err := pcm.ReadAllMono16(src, pcm.DefaultSampleRate, 4096)
package pcm

import "math"

const (
	// MaxSample is the largest 16-bit sample value.
	MaxSample = math.MaxInt16
	// MinSample is the smallest 16-bit sample value.
	MinSample = math.MinInt16

	// DefaultSampleRate is the rate used for capture, playback and loading
	// when nothing else is configured.
	DefaultSampleRate = 44100
)

// AudioLength returns the duration in milliseconds of samplesCount
// interleaved samples. Integer division truncates partial milliseconds.
// A zero sample rate or channel count yields 0.
func AudioLength(samplesCount, sampleRate, channels int) int {
	if sampleRate <= 0 || channels <= 0 {
		return 0
	}

	return (samplesCount / channels) * 1000 / sampleRate
}
