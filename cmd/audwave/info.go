// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/config"
)

func runInfo(args []string, cfg config.Config, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input audio file")
	rate := fs.Int("rate", cfg.SampleRate, "sample rate to normalise to")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *in == "" {
		return fmt.Errorf("%w: info needs -in", errUsage)
	}

	clip, err := audwave.Load(*in, *rate)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "file:     %s\n", *in)
	fmt.Fprintf(stdout, "source:   %d Hz, %d ch\n", clip.SourceRate, clip.SourceChannels)
	fmt.Fprintf(stdout, "rate:     %d Hz, %d ch\n", clip.SampleRate, clip.Channels)
	fmt.Fprintf(stdout, "samples:  %d\n", len(clip.Samples))
	fmt.Fprintf(stdout, "length:   %d ms\n", clip.Length())

	if peak, err := clip.Extremes(1); err == nil && len(peak) == 1 {
		fmt.Fprintf(stdout, "peak:     %d .. %d\n", peak[0].Min, peak[0].Max)
	}

	return nil
}
