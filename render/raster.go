// SPDX-License-Identifier: EPL-2.0

// Package render draws waveform snapshots as raster images and terminal
// rows.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ik5/audwave/waveform"
)

// axisSample is the widest label the time axis is expected to print.
const axisSample = "10.00"

// Style holds the colours and stroke width of a rendered waveform.
type Style struct {
	Background  color.NRGBA
	Fill        color.NRGBA
	Stroke      color.NRGBA
	Marker      color.NRGBA
	Text        color.NRGBA
	StrokeWidth float32
}

func DefaultStyle() Style {
	return Style{
		Background:  color.NRGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xff},
		Fill:        color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff},
		Stroke:      color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff},
		Marker:      color.NRGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff},
		Text:        color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		StrokeWidth: 1,
	}
}

// Renderer rasterises snapshots. A Renderer reuses its rasteriser and is not
// safe for concurrent use.
type Renderer struct {
	style Style
	face  font.Face
	ras   *vector.Rasterizer
}

func NewRenderer(style Style) *Renderer {
	return &Renderer{
		style: style,
		face:  basicfont.Face7x13,
		ras:   vector.NewRasterizer(0, 0),
	}
}

func (r *Renderer) Style() Style { return r.style }

// LabelWidth is the pixel width of the widest axis label in the renderer's
// font. It spaces the time axis ticks.
func (r *Renderer) LabelWidth() float32 {
	d := font.Drawer{Face: r.face}
	return float32(d.MeasureString(axisSample).Ceil())
}

// Render draws snap into a new image of snap.Width x snap.Height. A snapshot
// with no area gives an empty image.
func (r *Renderer) Render(snap waveform.Snapshot) *image.NRGBA {
	w, h := max(snap.Width, 0), max(snap.Height, 0)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}

	draw.Draw(img, img.Bounds(), image.NewUniform(r.style.Background), image.Point{}, draw.Src)

	switch snap.Mode {
	case waveform.ModeRecording:
		for _, f := range snap.History {
			c := r.style.Stroke
			c.A = f.Alpha
			r.strokeSegments(img, f.Segments, c)
		}
	case waveform.ModePlayback:
		if len(snap.Contour.Points) > 1 {
			r.fillPath(img, snap.Contour, r.style.Fill)
			r.strokePath(img, snap.Contour, r.style.Stroke)
		}
		if snap.ShowAxis {
			r.drawAxis(img, snap.AudioLength)
		}
		if x, ok := snap.MarkerX(); ok {
			r.drawMarker(img, x)
		}
	}

	return img
}

func (r *Renderer) reset(img *image.NRGBA) {
	b := img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
}

func (r *Renderer) fillPath(img *image.NRGBA, p waveform.Path, c color.NRGBA) {
	r.reset(img)

	r.ras.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		r.ras.LineTo(pt.X, pt.Y)
	}
	if p.Closed {
		r.ras.ClosePath()
	}

	r.ras.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Renderer) strokePath(img *image.NRGBA, p waveform.Path, c color.NRGBA) {
	r.reset(img)

	pts := p.Points
	for i := 1; i < len(pts); i++ {
		r.quad(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
	}
	if p.Closed {
		last := pts[len(pts)-1]
		r.quad(last.X, last.Y, pts[0].X, pts[0].Y)
	}

	r.ras.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// strokeSegments draws packed x0, y0, x1, y1 line segments.
func (r *Renderer) strokeSegments(img *image.NRGBA, segs []float32, c color.NRGBA) {
	if len(segs) < 4 || c.A == 0 {
		return
	}
	r.reset(img)

	for i := 0; i+3 < len(segs); i += 4 {
		r.quad(segs[i], segs[i+1], segs[i+2], segs[i+3])
	}

	r.ras.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// quad adds a segment as a rectangle StrokeWidth wide. Degenerate segments
// become a square dot so flat silence still shows up.
func (r *Renderer) quad(x0, y0, x1, y1 float32) {
	hw := max(r.style.StrokeWidth, 1) / 2

	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	var nx, ny float32
	if l == 0 {
		nx, ny = 0, hw
		x0 -= hw
		x1 += hw
	} else {
		nx, ny = -dy/l*hw, dx/l*hw
	}

	r.ras.MoveTo(x0+nx, y0+ny)
	r.ras.LineTo(x1+nx, y1+ny)
	r.ras.LineTo(x1-nx, y1-ny)
	r.ras.LineTo(x0-nx, y0-ny)
	r.ras.ClosePath()
}

func (r *Renderer) drawMarker(img *image.NRGBA, x float32) {
	col := int(x)
	rect := image.Rect(col, 0, col+1, img.Bounds().Dy())
	draw.Draw(img, rect, image.NewUniform(r.style.Marker), image.Point{}, draw.Over)
}

func (r *Renderer) drawAxis(img *image.NRGBA, audioLengthMs int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.style.Text),
		Face: r.face,
	}
	baseline := r.face.Metrics().Ascent.Ceil()

	for _, tick := range waveform.AxisTicks(audioLengthMs, img.Bounds().Dx(), r.LabelWidth()) {
		// labels are centred on their tick
		half := d.MeasureString(tick.Label) / 2
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(tick.X*64) - half,
			Y: fixed.I(baseline),
		}
		d.DrawString(tick.Label)
	}
}
