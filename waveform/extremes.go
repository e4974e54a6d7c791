// SPDX-License-Identifier: EPL-2.0

package waveform

import "fmt"

// Pair holds the smallest and largest sample of one pixel column.
type Pair struct {
	Min int16
	Max int16
}

// Table has one Pair per pixel column, left to right.
type Table []Pair

// ComputeExtremes splits samples into width proportional sub-ranges and
// returns the minimum and maximum of each.
//
// Column x covers [x*len/width, (x+1)*len/width). When width exceeds the
// number of samples some of those ranges are empty; such a column repeats the
// sample at its start index, clamped to the last sample. A nil or empty
// buffer produces width pairs of silence.
func ComputeExtremes(samples []int16, width int) (Table, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	table := make(Table, width)
	n := int64(len(samples))
	if n == 0 {
		return table, nil
	}

	w := int64(width)
	for x := range w {
		start := x * n / w
		end := (x + 1) * n / w
		if x == w-1 {
			end = n
		}

		if start >= end {
			s := samples[min(start, n-1)]
			table[x] = Pair{Min: s, Max: s}
			continue
		}

		lo, hi := samples[start], samples[start]
		for _, s := range samples[start+1 : end] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		table[x] = Pair{Min: lo, Max: hi}
	}

	return table, nil
}
