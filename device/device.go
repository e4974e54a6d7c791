// SPDX-License-Identifier: EPL-2.0

// Package device runs audio capture and playback on their own goroutines.
//
// A Capturer reads chunks from an Input and delivers copies over a channel.
// A Player streams a sample buffer to an Output and reports its position as
// events. Both are stopped by cancelling the context given to Start or by
// calling Stop.
//
// Inputs and outputs are opened through opener functions so that the
// controllers can run against real backends (oto, portaudio) or test fakes.
package device

import "github.com/ik5/audwave/pcm"

// Config describes the stream a backend should open.
type Config struct {
	SampleRate      int
	FramesPerBuffer int
	Channels        int
	// QueueDepth is the capacity of the delivery channels.
	QueueDepth int
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      pcm.DefaultSampleRate,
		FramesPerBuffer: 1024,
		Channels:        1,
		QueueDepth:      8,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = def.SampleRate
	}
	if c.FramesPerBuffer <= 0 {
		c.FramesPerBuffer = def.FramesPerBuffer
	}
	if c.Channels <= 0 {
		c.Channels = def.Channels
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = def.QueueDepth
	}
	return c
}

// Input is an open capture stream. Read blocks until some samples are
// available and returns how many were stored in dst.
type Input interface {
	Read(dst []int16) (int, error)
	Close() error
}

// Output is an open playback stream. Write blocks until the device accepted
// all samples.
type Output interface {
	Write(samples []int16) error
	Close() error
}

type (
	InputOpener  func(cfg Config) (Input, error)
	OutputOpener func(cfg Config) (Output, error)
)
