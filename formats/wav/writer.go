// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer streams mono 16-bit PCM into a WAV file. The header sizes are
// patched on Close, which is why the destination must be seekable.
type Writer struct {
	mu      sync.Mutex
	enc     *wav.Encoder
	buf     *goaudio.IntBuffer
	written int
	closed  bool
}

func NewWriter(w io.WriteSeeker, sampleRate int) *Writer {
	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, 16, 1, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

// Write appends samples. It is safe to call from several goroutines.
func (w *Writer) Write(samples []int16) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	w.written += len(samples)

	return nil
}

// Samples reports how many samples were written so far.
func (w *Writer) Samples() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.written
}

// Close finalises the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}

// WriteMono16 writes a complete mono 16-bit PCM WAV at sampleRate.
func WriteMono16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	wr := NewWriter(w, sampleRate)
	if err := wr.Write(samples); err != nil {
		return err
	}

	return wr.Close()
}
