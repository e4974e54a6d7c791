// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Silence returns n zero samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// Impulse returns n zero samples except for value at index at.
func Impulse(n, at int, value int16) []int16 {
	s := make([]int16, n)
	s[at] = value
	return s
}

// Sine16 returns n samples of a sine at frequency Hz scaled by amplitude
// in [0, 1].
func Sine16(n, sampleRate int, frequency, amplitude float64) []int16 {
	s := make([]int16, n)
	for i := range s {
		t := float64(i) / float64(sampleRate)
		s[i] = int16(amplitude * math.MaxInt16 * math.Sin(2*math.Pi*frequency*t))
	}
	return s
}

// Ramp returns n samples rising linearly from MinInt16 to MaxInt16.
func Ramp(n int) []int16 {
	s := make([]int16, n)
	if n == 1 {
		return s
	}
	for i := range s {
		s[i] = int16(math.MinInt16 + (math.MaxInt16-math.MinInt16)*i/(n-1))
	}
	return s
}
