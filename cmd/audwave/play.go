// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/config"
	"github.com/ik5/audwave/device"
	"github.com/ik5/audwave/internal/tui"
	"github.com/ik5/audwave/waveform"
)

// playController restarts playback from the top on every start.
type playController struct {
	ctx    context.Context
	player *device.Player
	send   func(tea.Msg)
}

func (c *playController) Toggle() error {
	if c.player.Playing() {
		c.player.Stop()
		return nil
	}

	events, err := c.player.Start(c.ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range events {
			c.send(tui.ProgressMsg(ev))
		}
	}()

	return nil
}

func (c *playController) Active() bool { return c.player.Playing() }

func runPlay(ctx context.Context, args []string, cfg config.Config, stderr io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input audio file")
	noTUI := fs.Bool("no-tui", false, "log progress instead of drawing the waveform")
	backend := fs.String("backend", cfg.OutputBackend, "output backend (oto or portaudio)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *in == "" {
		return fmt.Errorf("%w: play needs -in", errUsage)
	}

	open, err := device.OutputBackend(*backend)
	if err != nil {
		return err
	}

	clip, err := audwave.Load(*in, cfg.SampleRate)
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg, stderr, !*noTUI)
	if err != nil {
		return err
	}
	defer closeLog()
	defer logMetrics(log, prometheus.DefaultGatherer)

	log.Info().Str("file", *in).Str("backend", *backend).Int("length_ms", clip.Length()).Msg("playing")

	player := device.NewPlayer(clip.Samples, open, cfg.Device(), log)
	defer player.Stop()

	if *noTUI {
		return playPlain(ctx, player, log)
	}

	view := waveform.NewView(waveform.ModePlayback, cfg.Width, cfg.Height)
	view.SetSampleRate(clip.SampleRate)
	view.SetChannels(clip.Channels)
	view.SetSamples(clip.Samples)

	ctrl := &playController{ctx: ctx, player: player}
	return runTUI(ctx, tui.NewModel(view, ctrl), func(send func(tea.Msg)) {
		ctrl.send = send
		if err := ctrl.Toggle(); err != nil {
			// Send blocks until the program runs
			go send(tui.ErrMsg{Err: err})
		}
	})
}

// playPlain plays once and returns when playback ends or ctx is cancelled.
func playPlain(ctx context.Context, player *device.Player, log zerolog.Logger) error {
	events, err := player.Start(ctx)
	if err != nil {
		return err
	}

	for ev := range events {
		switch ev.Kind {
		case device.Progress:
			log.Debug().Int("position_ms", ev.PositionMs).Msg("progress")
		default:
			log.Info().Stringer("event", ev.Kind).Int("position_ms", ev.PositionMs).Msg("playback finished")
		}
	}

	return nil
}
