// SPDX-License-Identifier: EPL-2.0

package waveform

// HistorySize is how many live frames stay on screen.
const HistorySize = 6

const alphaStep = 255 / (HistorySize + 1)

// Frame is one remembered live chunk and the opacity to draw it with.
type Frame struct {
	Segments []float32
	Alpha    uint8
}

// History keeps the most recent live frames. Once full, Push overwrites the
// oldest frame's storage instead of allocating.
//
// History is not safe for concurrent use; View serialises access to its own.
type History struct {
	frames [][]float32
}

func NewHistory() *History {
	return &History{frames: make([][]float32, 0, HistorySize)}
}

// Push renders buf as live segments and appends them as the newest frame.
func (h *History) Push(buf []int16, width, height int) {
	var reuse []float32
	if len(h.frames) == HistorySize {
		reuse = h.frames[0]
		copy(h.frames, h.frames[1:])
		h.frames = h.frames[:HistorySize-1]
	}

	h.frames = append(h.frames, LiveSegments(buf, width, height, reuse))
}

// Frames returns the frames oldest first. Newer frames are more opaque.
// The segment slices are copies.
func (h *History) Frames() []Frame {
	out := make([]Frame, len(h.frames))
	for i, f := range h.frames {
		out[i] = Frame{
			Segments: append([]float32(nil), f...),
			Alpha:    uint8(alphaStep * (i + 1)),
		}
	}

	return out
}

func (h *History) Len() int { return len(h.frames) }

// Clear drops every frame, typically after the view was resized.
func (h *History) Clear() {
	h.frames = h.frames[:0]
}
