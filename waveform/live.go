// SPDX-License-Identifier: EPL-2.0

package waveform

// SegmentsLen is the number of float32 values LiveSegments writes for width.
func SegmentsLen(width int) int {
	if width < 2 {
		return 0
	}
	return 4 * (width - 1)
}

// LiveSegments samples buf once per pixel column and returns the polyline as
// line segments packed as x0, y0, x1, y1. Only the sample nearest to each
// column is drawn, which is enough for a chunk that scrolls past quickly.
//
// dst is reused when it has room. An empty buffer or a width below 2 gives
// no segments.
func LiveSegments(buf []int16, width, height int, dst []float32) []float32 {
	size := SegmentsLen(width)
	if len(buf) == 0 || size == 0 {
		return dst[:0]
	}
	if cap(dst) < size {
		dst = make([]float32, size)
	}
	dst = dst[:size]

	cy := CenterY(height)
	n := len(buf)
	var lastX, lastY float32
	i := 0
	for x := range width {
		idx := min(int(float32(x)/float32(width)*float32(n)), n-1)
		y := SampleY(buf[idx], cy)

		if x > 0 {
			dst[i] = lastX
			dst[i+1] = lastY
			dst[i+2] = float32(x)
			dst[i+3] = y
			i += 4
		}
		lastX, lastY = float32(x), y
	}

	return dst
}
