// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ik5/audwave/formats/aiff"
	"github.com/ik5/audwave/formats/flac"
	"github.com/ik5/audwave/formats/mp3"
	"github.com/ik5/audwave/formats/raw"
	"github.com/ik5/audwave/formats/vorbis"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/pcm"
	"github.com/ik5/audwave/waveform"
)

// NewRegistry returns a registry with every bundled decoder keyed by its
// usual file extensions.
func NewRegistry() *pcm.Registry {
	r := pcm.NewRegistry()

	r.Register("pcm", raw.Decoder{})
	r.Register("raw", raw.Decoder{})
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("flac", flac.Decoder{})

	return r
}

var defaultRegistry = NewRegistry()

// Clip is a decoded resource reduced to mono 16-bit PCM.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int

	// layout of the resource before it was normalised
	SourceRate     int
	SourceChannels int
}

// Length returns the clip duration in milliseconds.
func (c *Clip) Length() int {
	return pcm.AudioLength(len(c.Samples), c.SampleRate, c.Channels)
}

// Extremes reduces the clip to one min/max pair per column.
func (c *Clip) Extremes(width int) (waveform.Table, error) {
	return waveform.ComputeExtremes(c.Samples, width)
}

// Load decodes the file at path, picking the decoder from its extension, and
// normalises it to mono at rate.
func Load(path string, rate int) (*Clip, error) {
	dec, err := defaultRegistry.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	clip, err := decode(dec, f, rate)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return clip, nil
}

// LoadReader is Load for an already open resource. format is a registry key
// such as "wav" or "pcm".
func LoadReader(r io.Reader, format string, rate int) (*Clip, error) {
	dec, ok := defaultRegistry.Get(strings.TrimPrefix(format, "."))
	if !ok {
		return nil, fmt.Errorf("%w: %q", pcm.ErrUnknownFormat, format)
	}

	return decode(dec, r, rate)
}

func decode(dec pcm.Decoder, r io.Reader, rate int) (*Clip, error) {
	if rate <= 0 {
		return nil, pcm.ErrInvalidRate
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	samples, err := pcm.ReadAllMono16(src, rate, 0)
	if err != nil {
		return nil, err
	}

	return &Clip{
		Samples:        samples,
		SampleRate:     rate,
		Channels:       1,
		SourceRate:     src.SampleRate(),
		SourceChannels: src.Channels(),
	}, nil
}
