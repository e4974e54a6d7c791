// SPDX-License-Identifier: EPL-2.0

// Command audwave draws, plays and records audio waveforms.
//
//	audwave info -in FILE
//	audwave render -in FILE -out FILE.png [-width W] [-height H] [-no-axis]
//	audwave play -in FILE [-no-tui]
//	audwave record [-out FILE.wav] [-no-tui] [-duration D]
//
// Settings not given as flags come from AUDWAVE_* environment variables or a
// .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ik5/audwave/config"
	"github.com/ik5/audwave/internal/logging"
)

const usage = `usage: audwave <command> [flags]

commands:
  info    print the format and length of an audio file
  render  draw the waveform of an audio file into a PNG
  play    play an audio file with a moving marker
  record  record from the input device into a WAV file

run "audwave <command> -h" for the flags of a command`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "audwave:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd, rest := args[0], args[1:]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fmt.Fprintln(stdout, usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch cmd {
	case "info":
		return runInfo(rest, cfg, stdout, stderr)
	case "render":
		return runRender(rest, cfg, stdout, stderr)
	case "play":
		return runPlay(ctx, rest, cfg, stderr)
	case "record":
		return runRecord(ctx, rest, cfg, stdout, stderr)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// openLogger appends JSON logs to the configured file. Without a TUI the
// same records are echoed to the console.
func openLogger(cfg config.Config, console io.Writer, useTUI bool) (zerolog.Logger, func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = f
	if !useTUI {
		w = zerolog.MultiLevelWriter(f, logging.Console(console))
	}

	logger, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nil, err
	}

	return logging.Component(logger, "cli"), func() { _ = f.Close() }, nil
}

// logMetrics writes the final value of every audwave counter.
func logMetrics(log zerolog.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("gathering metrics")
		return
	}

	ev := log.Info()
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "audwave_") {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		ev = ev.Float64(strings.TrimPrefix(mf.GetName(), "audwave_"), total)
	}
	ev.Msg("session totals")
}
