// SPDX-License-Identifier: EPL-2.0

package waveform

// MarkerX returns the x of the playback marker and whether it should be
// drawn. Positions outside [0, audioLengthMs) are hidden.
func MarkerX(positionMs, audioLengthMs, width int) (float32, bool) {
	if audioLengthMs <= 0 || positionMs < 0 || positionMs >= audioLengthMs {
		return 0, false
	}

	xStep := float32(width) / float32(audioLengthMs)
	return xStep * float32(positionMs), true
}
