// SPDX-License-Identifier: EPL-2.0

// Package config loads audwave settings from AUDWAVE_* environment variables
// and optional dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ik5/audwave/device"
	"github.com/ik5/audwave/pcm"
)

const envPrefix = "AUDWAVE_"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	SampleRate      int
	FramesPerBuffer int
	QueueDepth      int

	Width    int
	Height   int
	ShowAxis bool

	InputBackend  string
	OutputBackend string

	LogLevel string
	LogFile  string
}

func Default() Config {
	return Config{
		SampleRate:      pcm.DefaultSampleRate,
		FramesPerBuffer: 1024,
		QueueDepth:      8,
		Width:           800,
		Height:          200,
		ShowAxis:        true,
		InputBackend:    device.BackendPortAudio,
		OutputBackend:   device.BackendOto,
		LogLevel:        "info",
		LogFile:         "audwave.log",
	}
}

// Load starts from Default, applies the given dotenv files (".env" when none
// are named) and then the process environment, which wins over the files.
// Missing dotenv files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileEnv := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range vals {
			fileEnv[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[envPrefix+key]
		return v, ok && v != ""
	}

	cfg := Default()
	var errs []error

	ints := []struct {
		key string
		dst *int
	}{
		{"SAMPLE_RATE", &cfg.SampleRate},
		{"FRAMES_PER_BUFFER", &cfg.FramesPerBuffer},
		{"QUEUE_DEPTH", &cfg.QueueDepth},
		{"WIDTH", &cfg.Width},
		{"HEIGHT", &cfg.Height},
	}
	for _, f := range ints {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s%s=%q is not a number", ErrInvalidConfig, envPrefix, f.key, v))
			continue
		}
		*f.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"INPUT_BACKEND", &cfg.InputBackend},
		{"OUTPUT_BACKEND", &cfg.OutputBackend},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"LOG_FILE", &cfg.LogFile},
	}
	for _, f := range strs {
		if v, ok := lookup(f.key); ok {
			*f.dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("SHOW_AXIS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sSHOW_AXIS=%q is not a boolean", ErrInvalidConfig, envPrefix, v))
		} else {
			cfg.ShowAxis = b
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every out of range setting at once.
func (c Config) Validate() error {
	var errs []error

	positive := []struct {
		name  string
		value int
	}{
		{"sample rate", c.SampleRate},
		{"frames per buffer", c.FramesPerBuffer},
		{"queue depth", c.QueueDepth},
		{"width", c.Width},
		{"height", c.Height},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.value))
		}
	}

	if _, err := device.InputBackend(c.InputBackend); errors.Is(err, device.ErrUnknownBackend) {
		errs = append(errs, fmt.Errorf("%w: input backend: %w", ErrInvalidConfig, err))
	}
	if _, err := device.OutputBackend(c.OutputBackend); err != nil {
		errs = append(errs, fmt.Errorf("%w: output backend: %w", ErrInvalidConfig, err))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel))
	}

	return errors.Join(errs...)
}

// Device returns the stream settings for the capture and playback
// controllers. Audio is always mono.
func (c Config) Device() device.Config {
	return device.Config{
		SampleRate:      c.SampleRate,
		FramesPerBuffer: c.FramesPerBuffer,
		Channels:        1,
		QueueDepth:      c.QueueDepth,
	}
}
