// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audwave/pcm"
)

// oto allows a single context per process, created on first use.
var otoShared struct {
	once       sync.Once
	ctx        *oto.Context
	err        error
	sampleRate int
	channels   int
}

func otoContext(cfg Config) (*oto.Context, error) {
	otoShared.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoShared.err = fmt.Errorf("creating oto context: %w", err)
			return
		}
		<-ready

		otoShared.ctx = ctx
		otoShared.sampleRate = cfg.SampleRate
		otoShared.channels = cfg.Channels
	})

	if otoShared.err != nil {
		return nil, otoShared.err
	}
	if otoShared.sampleRate != cfg.SampleRate || otoShared.channels != cfg.Channels {
		return nil, fmt.Errorf("%w: open at %d Hz/%d ch, requested %d Hz/%d ch", ErrFormatMismatch,
			otoShared.sampleRate, otoShared.channels, cfg.SampleRate, cfg.Channels)
	}

	return otoShared.ctx, nil
}

const (
	drainPoll    = 10 * time.Millisecond
	drainTimeout = 2 * time.Second
)

// otoPlayer is the part of oto.Player that Close depends on.
type otoPlayer interface {
	IsPlaying() bool
	Close() error
}

// waitDrained polls until p stops playing or timeout passes. It reports
// whether the player finished on its own.
func waitDrained(p otoPlayer, poll, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for p.IsPlaying() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(poll)
	}
	return true
}

// otoOutput feeds a persistent oto player through a pipe, so Write blocks
// until the player has pulled the samples.
type otoOutput struct {
	player otoPlayer
	pr     *io.PipeReader
	pw     *io.PipeWriter
	buf    []byte
}

// OpenOtoOutput opens the default playback device through oto.
func OpenOtoOutput(cfg Config) (Output, error) {
	cfg = cfg.withDefaults()

	ctx, err := otoContext(cfg)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &otoOutput{player: player, pr: pr, pw: pw}, nil
}

func (o *otoOutput) Write(samples []int16) error {
	o.buf = pcm.AppendLE(o.buf[:0], samples)
	if _, err := o.pw.Write(o.buf); err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	return nil
}

// Close ends the stream and lets oto play out what it has buffered before
// releasing the player.
func (o *otoOutput) Close() error {
	o.pw.Close()
	waitDrained(o.player, drainPoll, drainTimeout)
	err := o.player.Close()
	o.pr.Close()
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	return nil
}
