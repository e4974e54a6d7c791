// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain[T any](t *testing.T, ch <-chan T) []T {
	t.Helper()

	var out []T
	timeout := time.After(5 * time.Second)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, v)
		case <-timeout:
			t.Fatal("channel was not closed in time")
			return out
		}
	}
}

func TestCapturer_DeliversCopies(t *testing.T) {
	in := newScriptedInput(
		readResult{samples: []int16{1, 1, 1}},
		readResult{samples: []int16{2, 2}},
		readResult{samples: []int16{3}},
	)
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 4, QueueDepth: 8}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.NoError(t, err)

	got := drain(t, chunks)
	assert.Equal(t, [][]int16{{1, 1, 1}, {2, 2}, {3}}, got)

	<-in.closed
	assert.Eventually(t, func() bool { return !c.Recording() }, time.Second, 5*time.Millisecond)
}

func TestCapturer_OpenFailure(t *testing.T) {
	boom := errors.New("no microphone")
	c := NewCapturer(func(Config) (Input, error) { return nil, boom }, Config{}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, chunks)
	assert.False(t, c.Recording())

	// a failed start leaves the capturer usable
	c.open = inputOf(newScriptedInput())
	chunks, err = c.Start(context.Background())
	require.NoError(t, err)
	drain(t, chunks)
}

func TestCapturer_AlreadyRunning(t *testing.T) {
	in := newEndlessInput(7)
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 16}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, c.Recording())

	_, err = c.Start(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	c.Stop()
	assert.False(t, c.Recording())
	<-in.closed
	drain(t, chunks)

	// Stop on an idle capturer is harmless
	c.Stop()
}

func TestCapturer_ContextCancel(t *testing.T) {
	in := newEndlessInput(-3)
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 32, QueueDepth: 2}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	chunks, err := c.Start(ctx)
	require.NoError(t, err)

	first := <-chunks
	assert.Len(t, first, 32)
	for _, s := range first {
		assert.Equal(t, int16(-3), s)
	}

	cancel()
	drain(t, chunks)
	<-in.closed
}

func TestCapturer_ReadErrorsAreSkipped(t *testing.T) {
	before := testutil.ToFloat64(captureReadErrorsTotal)

	in := newScriptedInput(
		readResult{err: errors.New("overrun")},
		readResult{samples: []int16{5, 6}},
		readResult{samples: []int16{7}, err: errors.New("glitch")},
	)
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 4}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, [][]int16{{5, 6}, {7}}, drain(t, chunks))
	assert.GreaterOrEqual(t, testutil.ToFloat64(captureReadErrorsTotal)-before, 2.0)
}

func TestCapturer_DropsWhenConsumerLags(t *testing.T) {
	before := testutil.ToFloat64(captureChunksDroppedTotal)

	in := newScriptedInput(
		readResult{samples: []int16{1}},
		readResult{samples: []int16{2}},
		readResult{samples: []int16{3}},
		readResult{samples: []int16{4}},
	)
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 1, QueueDepth: 1}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.NoError(t, err)

	// let the loop run to the end before reading anything
	<-in.closed

	assert.Equal(t, [][]int16{{1}}, drain(t, chunks))
	assert.GreaterOrEqual(t, testutil.ToFloat64(captureChunksDroppedTotal)-before, 3.0)
}

func TestCapturer_BacksOffOnDeadInput(t *testing.T) {
	in := &deadInput{}
	c := NewCapturer(inputOf(in), Config{FramesPerBuffer: 4}, zerolog.Nop())

	chunks, err := c.Start(context.Background())
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)
	c.Stop()

	assert.Empty(t, drain(t, chunks))
	// 5+10+20+40+80 ms of backoff fit in the window
	assert.Less(t, in.reads.Load(), int64(20))
	assert.GreaterOrEqual(t, in.reads.Load(), int64(2))
}

func TestReadBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, readBackoffMin, readBackoff(1))
	assert.Equal(t, 2*readBackoffMin, readBackoff(2))
	assert.Equal(t, 8*readBackoffMin, readBackoff(4))
	assert.Equal(t, readBackoffMax, readBackoff(1000))
}
