// SPDX-License-Identifier: EPL-2.0

package waveform

import "fmt"

// Tick is one time-axis label, centred on X.
type Tick struct {
	X     float32
	Label string
}

// AxisTicks spaces whole-second labels along a clip of audioLengthMs drawn
// width pixels wide. labelWidth is the rendered width of a typical label
// ("10.00"); the step grows so that labels do not overlap.
func AxisTicks(audioLengthMs, width int, labelWidth float32) []Tick {
	if audioLengthMs <= 0 || width <= 0 {
		return nil
	}

	seconds := audioLengthMs / 1000
	xStep := float32(width) / (float32(audioLengthMs) / 1000)
	step := max(1, int(labelWidth*float32(seconds)*2)/width)

	ticks := make([]Tick, 0, seconds/step+1)
	for i := 0; i <= seconds; i += step {
		ticks = append(ticks, Tick{
			X:     float32(i) * xStep,
			Label: fmt.Sprintf("%.2f", float32(i)),
		})
	}

	return ticks
}
