// SPDX-License-Identifier: EPL-2.0

package waveform

import "github.com/ik5/audwave/pcm"

type Point struct {
	X, Y float32
}

// Path is a polyline in pixel space. A closed path implicitly returns from
// the last point to the first.
type Path struct {
	Points []Point
	Closed bool
}

// Bounds returns the smallest rectangle holding every point. An empty path
// yields the zero rectangle.
func (p Path) Bounds() (lo, hi Point) {
	if len(p.Points) == 0 {
		return Point{}, Point{}
	}

	lo, hi = p.Points[0], p.Points[0]
	for _, pt := range p.Points[1:] {
		lo.X = min(lo.X, pt.X)
		lo.Y = min(lo.Y, pt.Y)
		hi.X = max(hi.X, pt.X)
		hi.Y = max(hi.Y, pt.Y)
	}

	return lo, hi
}

// CenterY is the baseline of a view height pixels tall.
func CenterY(height int) float32 {
	return float32(height) / 2
}

// SampleY maps a sample to its vertical pixel position: full scale positive
// sits at the top, full scale negative slightly below the bottom edge.
func SampleY(s int16, centerY float32) float32 {
	// the explicit conversion keeps the product from being fused into the
	// subtraction
	return centerY - float32(float32(s)/pcm.MaxSample*centerY)
}

// BuildContour turns a table into a closed silhouette. The path starts on
// the baseline at x=0, runs along the maxima left to right and comes back
// along the minima right to left.
func BuildContour(table Table, height int) Path {
	cy := CenterY(height)
	points := make([]Point, 0, 1+2*len(table))
	points = append(points, Point{X: 0, Y: cy})

	for x, p := range table {
		points = append(points, Point{X: float32(x), Y: SampleY(p.Max, cy)})
	}
	for x := len(table) - 1; x >= 0; x-- {
		points = append(points, Point{X: float32(x), Y: SampleY(table[x].Min, cy)})
	}

	return Path{Points: points, Closed: true}
}
