// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"testing"
)

func constant(n int, v int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestHistory_KeepsNewest(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	for i := range 9 {
		h.Push(constant(64, int16(i*1000)), 32, 100)
	}

	if h.Len() != HistorySize {
		t.Fatalf("Len() = %d, want %d", h.Len(), HistorySize)
	}

	frames := h.Frames()
	for i, f := range frames {
		// oldest kept chunk is number 3
		wantY := SampleY(int16((i+3)*1000), CenterY(100))
		if f.Segments[1] != wantY {
			t.Errorf("frame %d y = %v, want %v", i, f.Segments[1], wantY)
		}
		if want := uint8(36 * (i + 1)); f.Alpha != want {
			t.Errorf("frame %d alpha = %d, want %d", i, f.Alpha, want)
		}
	}
}

func TestHistory_AlphaIncreases(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.Push(constant(8, 1), 4, 4)
	h.Push(constant(8, 2), 4, 4)

	frames := h.Frames()
	if frames[0].Alpha >= frames[1].Alpha {
		t.Errorf("alphas = %d, %d; newer frame should be brighter", frames[0].Alpha, frames[1].Alpha)
	}
}

func TestHistory_PushReusesStorageWhenFull(t *testing.T) {
	h := NewHistory()
	buf := constant(1024, 500)
	for range HistorySize {
		h.Push(buf, 200, 100)
	}

	allocs := testing.AllocsPerRun(20, func() {
		h.Push(buf, 200, 100)
	})
	if allocs != 0 {
		t.Errorf("Push allocated %v times per call on a full ring", allocs)
	}
}

func TestHistory_FramesAreCopies(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.Push(constant(8, 0), 4, 10)

	frames := h.Frames()
	frames[0].Segments[1] = -1

	if h.Frames()[0].Segments[1] == -1 {
		t.Error("Frames exposed internal storage")
	}
}

func TestHistory_Clear(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	h.Push(constant(8, 0), 4, 10)
	h.Clear()

	if h.Len() != 0 || len(h.Frames()) != 0 {
		t.Errorf("Len() = %d after Clear", h.Len())
	}
}
