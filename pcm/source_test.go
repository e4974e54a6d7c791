// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type nopDecoder struct{ name string }

func (nopDecoder) Decode(io.Reader) (Source, error) { return NewSliceSource(nil, 8000, 1), nil }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("WAV", nopDecoder{name: "wav"})
	reg.Register("pcm", nopDecoder{name: "pcm"})

	d, ok := reg.Get("wav")
	if !ok {
		t.Fatal("Get(wav) not found")
	}
	if d.(nopDecoder).name != "wav" {
		t.Errorf("Get(wav) = %v", d)
	}

	if _, ok := reg.Get("mp3"); ok {
		t.Error("Get(mp3) should not be found")
	}

	if got := reg.Formats(); !slices.Equal(got, []string{"pcm", "wav"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("pcm", nopDecoder{name: "pcm"})

	if _, err := reg.ForPath("/res/raw/jinglebells.PCM"); err != nil {
		t.Errorf("ForPath() error = %v", err)
	}

	_, err := reg.ForPath("song.xyz")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForPath() error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				reg.Register("pcm", nopDecoder{})
			} else {
				reg.Get("pcm")
			}
		}()
	}
	wg.Wait()
}
