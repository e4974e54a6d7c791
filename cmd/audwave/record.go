// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ik5/audwave/config"
	"github.com/ik5/audwave/device"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/internal/tui"
	"github.com/ik5/audwave/waveform"
)

// recorder appends every captured chunk to a WAV file and forwards it to
// the display. Restarting a stopped recorder continues the same file.
type recorder struct {
	ctx      context.Context
	capturer *device.Capturer
	out      *wav.Writer
	send     func(tea.Msg)
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func (r *recorder) Toggle() error {
	if r.capturer.Recording() {
		r.capturer.Stop()
		return nil
	}

	chunks, err := r.capturer.Start(r.ctx)
	if err != nil {
		return err
	}
	r.wg.Go(func() { r.consume(chunks) })

	return nil
}

func (r *recorder) Active() bool { return r.capturer.Recording() }

func (r *recorder) consume(chunks <-chan []int16) {
	for chunk := range chunks {
		if err := r.out.Write(chunk); err != nil {
			r.log.Error().Err(err).Msg("writing recording")
			r.send(tui.ErrMsg{Err: err})
			continue
		}
		r.send(tui.ChunkMsg(chunk))
	}
}

// finish stops capturing, waits for queued chunks and finalises the file.
func (r *recorder) finish() error {
	r.capturer.Stop()
	r.wg.Wait()

	return r.out.Close()
}

func runRecord(ctx context.Context, args []string, cfg config.Config, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "recording.wav", "output WAV file")
	noTUI := fs.Bool("no-tui", false, "log instead of drawing the waveform")
	duration := fs.Duration("duration", 0, "stop after this long, 0 records until interrupted")
	backend := fs.String("backend", cfg.InputBackend, "input backend")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	open, err := device.InputBackend(*backend)
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg, stderr, !*noTUI)
	if err != nil {
		return err
	}
	defer closeLog()
	defer logMetrics(log, prometheus.DefaultGatherer)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	defer f.Close()

	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	devCfg := cfg.Device()
	rec := &recorder{
		ctx:      ctx,
		capturer: device.NewCapturer(open, devCfg, log),
		out:      wav.NewWriter(f, devCfg.SampleRate),
		send:     func(tea.Msg) {},
		log:      log,
	}

	log.Info().Str("file", *out).Str("backend", *backend).Int("sample_rate", devCfg.SampleRate).Msg("recording")

	if *noTUI {
		err = recordPlain(ctx, rec)
	} else {
		view := waveform.NewView(waveform.ModeRecording, cfg.Width, cfg.Height)
		view.SetSampleRate(devCfg.SampleRate)
		err = runTUI(ctx, tui.NewModel(view, rec), func(send func(tea.Msg)) {
			rec.send = send
			if err := rec.Toggle(); err != nil {
				// Send blocks until the program runs
				go send(tui.ErrMsg{Err: err})
			}
		})
	}

	if cerr := rec.finish(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	length := time.Duration(rec.out.Samples()) * time.Second / time.Duration(devCfg.SampleRate)
	log.Info().Int("samples", rec.out.Samples()).Dur("length", length).Msg("recording saved")
	fmt.Fprintf(stdout, "wrote %s (%s)\n", *out, length.Round(time.Millisecond))

	return nil
}

// recordPlain records until ctx ends.
func recordPlain(ctx context.Context, rec *recorder) error {
	if err := rec.Toggle(); err != nil {
		return err
	}
	<-ctx.Done()

	return nil
}
