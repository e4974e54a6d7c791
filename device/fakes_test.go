// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// scriptedInput replays reads from a script and then reports io.EOF.
type scriptedInput struct {
	mu     sync.Mutex
	script []readResult
	closed chan struct{}
	once   sync.Once
}

type readResult struct {
	samples []int16
	err     error
}

func newScriptedInput(script ...readResult) *scriptedInput {
	return &scriptedInput{script: script, closed: make(chan struct{})}
}

func (s *scriptedInput) Read(dst []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.script) == 0 {
		return 0, io.EOF
	}
	r := s.script[0]
	s.script = s.script[1:]

	return copy(dst, r.samples), r.err
}

func (s *scriptedInput) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

// endlessInput returns a constant chunk until closed.
type endlessInput struct {
	value  int16
	closed chan struct{}
	once   sync.Once
}

func newEndlessInput(v int16) *endlessInput {
	return &endlessInput{value: v, closed: make(chan struct{})}
}

func (e *endlessInput) Read(dst []int16) (int, error) {
	for i := range dst {
		dst[i] = e.value
	}
	return len(dst), nil
}

func (e *endlessInput) Close() error {
	e.once.Do(func() { close(e.closed) })
	return nil
}

// deadInput fails every read without data, like an unplugged device.
type deadInput struct {
	reads atomic.Int64
}

func (d *deadInput) Read([]int16) (int, error) {
	d.reads.Add(1)
	return 0, errors.New("device unplugged")
}

func (d *deadInput) Close() error { return nil }

// recordingOutput keeps a copy of every write.
type recordingOutput struct {
	mu      sync.Mutex
	writes  [][]int16
	fail    map[int]error
	release chan struct{}
	delay   time.Duration
	closed  bool
}

func (r *recordingOutput) Write(samples []int16) error {
	if r.release != nil {
		<-r.release
	}
	time.Sleep(r.delay)

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.writes)
	r.writes = append(r.writes, append([]int16(nil), samples...))
	if err, ok := r.fail[idx]; ok {
		return err
	}
	return nil
}

func (r *recordingOutput) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

func (r *recordingOutput) snapshot() ([][]int16, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writes, r.closed
}

func inputOf(in Input) InputOpener {
	return func(Config) (Input, error) { return in, nil }
}

func outputOf(out Output) OutputOpener {
	return func(Config) (Output, error) { return out, nil }
}
