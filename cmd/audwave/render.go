// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/config"
	"github.com/ik5/audwave/render"
	"github.com/ik5/audwave/waveform"
)

func runRender(args []string, cfg config.Config, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input audio file")
	out := fs.String("out", "", "output PNG file")
	width := fs.Int("width", cfg.Width, "image width in pixels")
	height := fs.Int("height", cfg.Height, "image height in pixels")
	noAxis := fs.Bool("no-axis", !cfg.ShowAxis, "omit the time axis")
	rate := fs.Int("rate", cfg.SampleRate, "sample rate to normalise to")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("%w: render needs -in and -out", errUsage)
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("%w: %dx%d", waveform.ErrInvalidWidth, *width, *height)
	}

	clip, err := audwave.Load(*in, *rate)
	if err != nil {
		return err
	}

	view := waveform.NewView(waveform.ModePlayback, *width, *height)
	view.SetSampleRate(clip.SampleRate)
	view.SetChannels(clip.Channels)
	view.SetShowAxis(!*noAxis)
	view.SetSamples(clip.Samples)

	img := render.NewRenderer(render.DefaultStyle()).Render(view.Snapshot())
	if err := render.WritePNG(*out, img); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s (%dx%d, %d ms)\n", *out, *width, *height, clip.Length())

	return nil
}
