// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"slices"
	"sync"

	"github.com/ik5/audwave/pcm"
)

// Mode selects how a View draws its samples.
type Mode int

const (
	// ModeRecording scrolls live chunks with a fading history.
	ModeRecording Mode = iota + 1
	// ModePlayback draws the whole clip as a silhouette with a marker.
	ModePlayback
)

func (m Mode) String() string {
	switch m {
	case ModeRecording:
		return "recording"
	case ModePlayback:
		return "playback"
	default:
		return "unknown"
	}
}

// View is the state behind a waveform display. Device goroutines feed it
// samples and positions while a renderer takes snapshots.
type View struct {
	mu sync.Mutex

	mode       Mode
	width      int
	height     int
	sampleRate int
	channels   int
	showAxis   bool

	samples     []int16
	audioLength int
	marker      int
	history     *History

	// cached playback geometry, rebuilt when samples or size change
	extremes Table
	contour  Path
}

// NewView creates a view of width x height pixels for mono audio at the
// default sample rate.
func NewView(mode Mode, width, height int) *View {
	return &View{
		mode:       mode,
		width:      width,
		height:     height,
		sampleRate: pcm.DefaultSampleRate,
		channels:   1,
		showAxis:   true,
		marker:     -1,
		history:    NewHistory(),
	}
}

func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mode
}

// SetMode switches the display mode and drops state from the previous one.
func (v *View) SetMode(m Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = m
	v.history.Clear()
	v.marker = -1
	v.rebuild()
}

// Resize changes the pixel size. Live history is dropped since its geometry
// no longer fits.
func (v *View) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.history.Clear()
	v.rebuild()
}

func (v *View) SetSampleRate(rate int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sampleRate = rate
	v.updateLength()
}

func (v *View) SetChannels(channels int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.channels = channels
	v.updateLength()
}

func (v *View) SetShowAxis(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.showAxis = show
}

// SetSamples replaces the sample buffer with a copy of samples. In recording
// mode the chunk becomes the newest history frame. In playback mode the
// marker is reset and the silhouette rebuilt.
func (v *View) SetSamples(samples []int16) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.samples = slices.Clone(samples)
	v.updateLength()

	switch v.mode {
	case ModeRecording:
		v.history.Push(v.samples, v.width, v.height)
	case ModePlayback:
		v.marker = -1
		v.rebuild()
	}
}

// SetMarker moves the playback marker, in milliseconds.
func (v *View) SetMarker(positionMs int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.marker = positionMs
}

func (v *View) Marker() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.marker
}

func (v *View) AudioLength() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.audioLength
}

func (v *View) updateLength() {
	if len(v.samples) == 0 {
		v.audioLength = 0
		return
	}
	if v.sampleRate <= 0 || v.channels <= 0 {
		return
	}
	v.audioLength = pcm.AudioLength(len(v.samples), v.sampleRate, v.channels)
}

func (v *View) rebuild() {
	v.extremes, v.contour = nil, Path{}
	if v.mode != ModePlayback || v.width <= 0 || v.height <= 0 || v.samples == nil {
		return
	}

	// width is positive here so the error cannot happen
	v.extremes, _ = ComputeExtremes(v.samples, v.width)
	v.contour = BuildContour(v.extremes, v.height)
}

// Snapshot is a copy of the view state that renderers can use without
// holding the lock.
type Snapshot struct {
	Mode        Mode
	Width       int
	Height      int
	SampleRate  int
	Channels    int
	ShowAxis    bool
	Samples     []int16
	AudioLength int
	Marker      int
	Extremes    Table
	Contour     Path
	History     []Frame
}

// MarkerX places the marker for this snapshot.
func (s Snapshot) MarkerX() (float32, bool) {
	return MarkerX(s.Marker, s.AudioLength, s.Width)
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Snapshot{
		Mode:        v.mode,
		Width:       v.width,
		Height:      v.height,
		SampleRate:  v.sampleRate,
		Channels:    v.channels,
		ShowAxis:    v.showAxis,
		Samples:     slices.Clone(v.samples),
		AudioLength: v.audioLength,
		Marker:      v.marker,
		Extremes:    slices.Clone(v.extremes),
		Contour: Path{
			Points: slices.Clone(v.contour.Points),
			Closed: v.contour.Closed,
		},
		History: v.history.Frames(),
	}
}
