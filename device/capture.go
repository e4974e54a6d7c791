// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Capturer reads an input device on a background goroutine.
type Capturer struct {
	open   InputOpener
	cfg    Config
	logger zerolog.Logger
	run    runner
}

func NewCapturer(open InputOpener, cfg Config, logger zerolog.Logger) *Capturer {
	return &Capturer{
		open:   open,
		cfg:    cfg.withDefaults(),
		logger: logger.With().Str("component", "capture").Logger(),
	}
}

// Start opens the input and begins reading. Every read is delivered as a
// fresh slice on the returned channel; when the consumer falls behind by more
// than the queue depth, chunks are dropped. The channel is closed once the
// loop exits, either because ctx was cancelled, Stop was called or the input
// reported io.EOF.
//
// Opening failures are returned and nothing is started.
func (c *Capturer) Start(ctx context.Context) (<-chan []int16, error) {
	log := c.logger.With().Str("session", uuid.NewString()).Logger()
	out := make(chan []int16, c.cfg.QueueDepth)

	var in Input
	prepare := func() error {
		var err error
		in, err = c.open(c.cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to open input device")
			return fmt.Errorf("opening input: %w", err)
		}
		return nil
	}

	err := c.run.launch(ctx, prepare, func(ctx context.Context) {
		c.loop(ctx, in, out, log)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Capturer) loop(ctx context.Context, in Input, out chan<- []int16, log zerolog.Logger) {
	defer close(out)
	defer func() {
		if err := in.Close(); err != nil {
			log.Warn().Err(err).Msg("closing input device")
		}
	}()

	log.Info().
		Int("sample_rate", c.cfg.SampleRate).
		Int("frames_per_buffer", c.cfg.FramesPerBuffer).
		Msg("capture started")

	buf := make([]int16, c.cfg.FramesPerBuffer*c.cfg.Channels)
	var read, dropped, failures int
	defer func() {
		log.Info().Int("samples", read).Int("dropped_chunks", dropped).Msg("capture stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := in.Read(buf)
		if n > 0 {
			read += n
			captureChunksTotal.Inc()

			select {
			case out <- slices.Clone(buf[:n]):
			default:
				dropped++
				captureChunksDroppedTotal.Inc()
			}
		}

		if errors.Is(err, io.EOF) {
			return
		}
		if err == nil {
			failures = 0
			continue
		}

		captureReadErrorsTotal.Inc()
		failures++
		if failures == 1 {
			log.Warn().Err(err).Msg("capture read failed")
		} else {
			log.Debug().Err(err).Int("consecutive", failures).Msg("capture read failed")
		}

		// a read that yields nothing keeps failing at once, e.g. after unplugging
		if n == 0 && !sleepCtx(ctx, readBackoff(failures)) {
			return
		}
	}
}

const (
	readBackoffMin = 5 * time.Millisecond
	readBackoffMax = 500 * time.Millisecond
)

// readBackoff doubles the wait for every consecutive failed read.
func readBackoff(failures int) time.Duration {
	shift := min(max(failures-1, 0), 10)
	return min(readBackoffMin<<shift, readBackoffMax)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Stop cancels a running capture and waits for the loop to finish.
func (c *Capturer) Stop() { c.run.stop() }

func (c *Capturer) Recording() bool { return c.run.running() }
