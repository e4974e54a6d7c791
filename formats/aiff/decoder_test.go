// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockAiffReader struct {
	data []int
	pos  int
	err  error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: 1, SampleRate: 22050}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockAiffReader{data: []int{16384, -32768, 32767}},
		sampleRate: 22050,
		channels:   1,
	}

	buf := make([]float32, 2)
	n, err := src.ReadSamples(buf)
	if n != 2 || err != nil {
		t.Fatalf("first read = (%d, %v), want (2, nil)", n, err)
	}
	if buf[0] != 0.5 || buf[1] != -1 {
		t.Errorf("buf = %v, want [0.5 -1]", buf)
	}

	n, err = src.ReadSamples(buf)
	if n != 1 || err != io.EOF {
		t.Errorf("short read = (%d, %v), want (1, EOF)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("final read = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockAiffReader{data: []int{1}}}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v)", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad SSND chunk")
	src := &source{dec: &mockAiffReader{err: boom}}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestDecoder_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF....WAVEfmt definitely not FORM")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}
