// SPDX-License-Identifier: EPL-2.0

package render

import (
	"math"
	"strings"

	"github.com/ik5/audwave/waveform"
)

const (
	glyphFull  = '█'
	glyphUpper = '▀'
	glyphLower = '▄'
	glyphFlat  = '─'
	glyphEmpty = ' '
)

// Rows draws a table as height lines of block glyphs, one column per pair.
// Each text row is one unit of the same y mapping the raster renderer uses,
// so half covered cells get a half block.
func Rows(table waveform.Table, height int) []string {
	if height <= 0 {
		return nil
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(glyphEmpty), len(table)))
	}

	cy := waveform.CenterY(height)
	last := float32(height)
	for x, p := range table {
		if p.Min == p.Max {
			row := min(int(waveform.SampleY(p.Max, cy)), height-1)
			grid[row][x] = glyphFlat
			continue
		}

		top := min(max(waveform.SampleY(p.Max, cy), 0), last)
		bottom := min(max(waveform.SampleY(p.Min, cy), 0), last)

		first := int(top)
		end := int(math.Ceil(float64(bottom)))
		for row := first; row < end && row < height; row++ {
			g := glyphFull
			switch {
			case row == first && top-float32(row) >= 0.5:
				g = glyphLower
			case row == end-1 && float32(end)-bottom >= 0.5:
				g = glyphUpper
			}
			grid[row][x] = g
		}
	}

	rows := make([]string, height)
	for r := range grid {
		rows[r] = string(grid[r])
	}

	return rows
}

// LiveRows draws the latest capture chunk width columns wide.
func LiveRows(buf []int16, width, height int) []string {
	table, err := waveform.ComputeExtremes(buf, width)
	if err != nil {
		return nil
	}

	return Rows(table, height)
}
