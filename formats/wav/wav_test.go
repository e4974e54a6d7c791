// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audwave/internal/audiotest"
	"github.com/ik5/audwave/pcm"
)

func writeTemp(t *testing.T, rate int, samples []int16) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WriteMono16(f, rate, samples); err != nil {
		t.Fatalf("WriteMono16() error = %v", err)
	}

	return path
}

func TestWriteThenDecode(t *testing.T) {
	t.Parallel()

	want := audiotest.Sine16(800, 8000, 440, 0.8)
	path := writeTemp(t, 8000, want)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Fatalf("format = %d Hz / %d ch", src.SampleRate(), src.Channels())
	}

	got, err := pcm.ReadAllMono16(src, 8000, 128)
	if err != nil {
		t.Fatalf("ReadAllMono16() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(writeTemp(t, 16000, []int16{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}

	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", src.SampleRate())
	}
}

func TestDecoder_NotWav(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is not a riff file at all, not even close")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

// zeroRateWav is a mono 16-bit WAV whose fmt chunk claims 0 Hz.
func zeroRateWav(samples int) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+samples*2))
	b.WriteString("WAVEfmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(pcmFormat))
	_ = binary.Write(&b, le, uint16(1))    // channels
	_ = binary.Write(&b, le, uint32(0))    // sample rate
	_ = binary.Write(&b, le, uint32(2000)) // byte rate
	_ = binary.Write(&b, le, uint16(2))    // block align
	_ = binary.Write(&b, le, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(samples*2))
	b.Write(make([]byte, samples*2))
	return b.Bytes()
}

func TestDecoder_ZeroSampleRate(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(zeroRateWav(100)))
	if !errors.Is(err, ErrInvalidHeader) && !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrInvalidHeader", err)
	}
}

func TestCheckHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		format, rate, chans, depth int
		want                       error
	}{
		{"valid", pcmFormat, 44100, 2, 16, nil},
		{"float", 3, 44100, 2, 32, ErrUnsupportedEncoding},
		{"zero rate", pcmFormat, 0, 1, 16, ErrInvalidHeader},
		{"zero channels", pcmFormat, 8000, 0, 16, ErrInvalidHeader},
		{"8 bit", pcmFormat, 8000, 1, 8, ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkHeader(tt.format, tt.rate, tt.chans, tt.depth)
			if tt.want == nil && err != nil {
				t.Errorf("checkHeader() error = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("checkHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriter_Incremental(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "live.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := NewWriter(f, 44100)
	for range 3 {
		if err := w.Write(audiotest.Sine16(1024, 44100, 220, 0.5)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if w.Samples() != 3072 {
		t.Errorf("Samples() = %d, want 3072", w.Samples())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Write([]int16{1}); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Write() after Close error = %v, want ErrWriterClosed", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 44+3072*2 {
		t.Errorf("file size = %d, want %d", info.Size(), 44+3072*2)
	}
}

type fakeReader struct {
	data []int
	pos  int
	err  error
}

func (f *fakeReader) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: 2, SampleRate: 48000}
}

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_Scaling(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeReader{data: []int{8388607, -8388608, 4194304, 0}},
		sampleRate: 48000,
		channels:   2,
		scale:      1.0 / 8388608,
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = (%d, %v)", n, err)
	}
	if buf[1] != -1 || buf[2] != 0.5 {
		t.Errorf("buf = %v", buf[:n])
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("read at end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("truncated chunk")
	src := &source{dec: &fakeReader{err: boom}, scale: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}
