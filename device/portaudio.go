// SPDX-License-Identifier: EPL-2.0

//go:build !noportaudio

package device

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudio must be initialised once per open stream and terminated as
// many times.
var paRefs struct {
	mu sync.Mutex
	n  int
}

func paAcquire() error {
	paRefs.mu.Lock()
	defer paRefs.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	paRefs.n++
	return nil
}

func paRelease() error {
	paRefs.mu.Lock()
	defer paRefs.mu.Unlock()

	if paRefs.n == 0 {
		return nil
	}
	paRefs.n--
	return portaudio.Terminate()
}

// paStream opens a blocking default stream bound to buf.
func paStream(in, out int, cfg Config, buf []int16) (*portaudio.Stream, error) {
	if err := paAcquire(); err != nil {
		return nil, err
	}

	stream, err := portaudio.OpenDefaultStream(in, out, float64(cfg.SampleRate), cfg.FramesPerBuffer, buf)
	if err != nil {
		paRelease()
		return nil, fmt.Errorf("opening portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		paRelease()
		return nil, fmt.Errorf("starting portaudio stream: %w", err)
	}

	return stream, nil
}

func paClose(stream *portaudio.Stream) error {
	stopErr := stream.Stop()
	closeErr := stream.Close()
	relErr := paRelease()

	for _, err := range []error{stopErr, closeErr, relErr} {
		if err != nil {
			return fmt.Errorf("portaudio: %w", err)
		}
	}
	return nil
}

type paInput struct {
	stream *portaudio.Stream
	buf    []int16
}

// OpenPortAudioInput opens the default microphone.
func OpenPortAudioInput(cfg Config) (Input, error) {
	cfg = cfg.withDefaults()
	buf := make([]int16, cfg.FramesPerBuffer*cfg.Channels)

	stream, err := paStream(cfg.Channels, 0, cfg, buf)
	if err != nil {
		return nil, err
	}

	return &paInput{stream: stream, buf: buf}, nil
}

func (p *paInput) Read(dst []int16) (int, error) {
	if err := p.stream.Read(); err != nil {
		// overflow still leaves a full buffer behind
		if err == portaudio.InputOverflowed {
			return copy(dst, p.buf), err
		}
		return 0, fmt.Errorf("portaudio: %w", err)
	}
	return copy(dst, p.buf), nil
}

func (p *paInput) Close() error { return paClose(p.stream) }

type paOutput struct {
	stream *portaudio.Stream
	buf    []int16
}

// OpenPortAudioOutput opens the default speaker.
func OpenPortAudioOutput(cfg Config) (Output, error) {
	cfg = cfg.withDefaults()
	buf := make([]int16, cfg.FramesPerBuffer*cfg.Channels)

	stream, err := paStream(0, cfg.Channels, cfg, buf)
	if err != nil {
		return nil, err
	}

	return &paOutput{stream: stream, buf: buf}, nil
}

func (p *paOutput) Write(samples []int16) error {
	for len(samples) > 0 {
		n := copy(p.buf, samples)
		clear(p.buf[n:])
		samples = samples[n:]

		if err := p.stream.Write(); err != nil && err != portaudio.OutputUnderflowed {
			return fmt.Errorf("portaudio: %w", err)
		}
	}
	return nil
}

func (p *paOutput) Close() error { return paClose(p.stream) }
