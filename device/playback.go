// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ik5/audwave/pcm"
)

// progressPerSecond is how often playback reports its position.
const progressPerSecond = 30

type EventKind int

const (
	// Progress carries the position reached so far.
	Progress EventKind = iota
	// Completed is sent once every sample was written.
	Completed
	// Stopped is sent when playback was cancelled before the end.
	Stopped
)

func (k EventKind) String() string {
	switch k {
	case Progress:
		return "progress"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event reports playback state. PositionMs is measured from the samples
// handed to the output, not from the device play head.
type Event struct {
	Kind       EventKind
	PositionMs int
}

// Player streams a fixed sample buffer to an output device.
type Player struct {
	samples []int16
	open    OutputOpener
	cfg     Config
	logger  zerolog.Logger
	run     runner
}

// NewPlayer prepares playback of samples, interleaved per cfg.Channels. The
// slice must not be modified while playing.
func NewPlayer(samples []int16, open OutputOpener, cfg Config, logger zerolog.Logger) *Player {
	return &Player{
		samples: samples,
		open:    open,
		cfg:     cfg.withDefaults(),
		logger:  logger.With().Str("component", "playback").Logger(),
	}
}

// AudioLength is the duration of the buffer in milliseconds.
func (p *Player) AudioLength() int {
	return pcm.AudioLength(len(p.samples), p.cfg.SampleRate, p.cfg.Channels)
}

// Start opens the output and streams the buffer in FramesPerBuffer chunks,
// padding the last one with silence. Progress events are sent 30 times per
// second of audio and dropped when the consumer lags. The final Completed or
// Stopped event is always delivered before the channel is closed.
func (p *Player) Start(ctx context.Context) (<-chan Event, error) {
	log := p.logger.With().Str("session", uuid.NewString()).Logger()
	events := make(chan Event, p.cfg.QueueDepth)

	var out Output
	prepare := func() error {
		var err error
		out, err = p.open(p.cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to open output device")
			return fmt.Errorf("opening output: %w", err)
		}
		return nil
	}

	err := p.run.launch(ctx, prepare, func(ctx context.Context) {
		p.loop(ctx, out, events, log)
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (p *Player) loop(ctx context.Context, out Output, events chan Event, log zerolog.Logger) {
	defer close(events)
	defer func() {
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msg("closing output device")
		}
	}()

	total := len(p.samples)
	buf := make([]int16, p.cfg.FramesPerBuffer*p.cfg.Channels)
	period := max(1, p.cfg.SampleRate/progressPerSecond) * p.cfg.Channels
	next := period

	log.Info().Int("samples", total).Int("audio_length_ms", p.AudioLength()).Msg("playback started")

	written := 0
	for written < total {
		select {
		case <-ctx.Done():
			log.Info().Int("samples", written).Msg("playback stopped")
			finalEvent(events, Event{Kind: Stopped, PositionMs: p.position(written)})
			return
		default:
		}

		n := copy(buf, p.samples[written:])
		clear(buf[n:])

		if err := out.Write(buf); err != nil {
			playbackWriteErrorsTotal.Inc()
			log.Warn().Err(err).Msg("playback write failed")
		} else {
			playbackSamplesTotal.Add(float64(len(buf)))
		}
		written += n

		for ; next <= written && next < total; next += period {
			select {
			case events <- Event{Kind: Progress, PositionMs: p.position(next)}:
			default:
			}
		}
	}

	log.Info().Int("samples", written).Msg("playback completed")
	finalEvent(events, Event{Kind: Completed, PositionMs: p.AudioLength()})
}

func (p *Player) position(samples int) int {
	return pcm.AudioLength(samples, p.cfg.SampleRate, p.cfg.Channels)
}

// finalEvent delivers ev, discarding the oldest queued event if the channel
// is full. Only the sending goroutine calls it, so a slot is always freed.
func finalEvent(events chan Event, ev Event) {
	select {
	case events <- ev:
		return
	default:
	}

	select {
	case <-events:
	default:
	}
	events <- ev
}

// Stop cancels playback and waits for the loop to finish.
func (p *Player) Stop() { p.run.stop() }

func (p *Player) Playing() bool { return p.run.running() }
