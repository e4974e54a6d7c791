// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

const sampleScale float32 = 32768.0

// FloatToSample converts a float sample in [-1, 1] to 16-bit PCM.
// Values outside the range are clamped. Samples produced by SampleToFloat
// convert back to the exact same value.
func FloatToSample(x float32) int16 {
	v := x * sampleScale
	if v > MaxSample {
		return MaxSample
	}
	if v < MinSample {
		return MinSample
	}

	return int16(v)
}

// SampleToFloat converts a 16-bit sample to a float in [-1, 1).
func SampleToFloat(s int16) float32 {
	return float32(s) / sampleScale
}

// DecodeLE decodes little-endian 16-bit samples from src into dst and returns
// the number of samples written. A trailing odd byte is ignored.
func DecodeLE(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}

	return n
}

// AppendLE appends samples to dst as little-endian 16-bit values.
func AppendLE(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}

	return dst
}
