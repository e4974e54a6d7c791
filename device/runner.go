// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"sync"
)

// runner tracks the single worker goroutine of a controller.
type runner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// launch runs prepare and, if it succeeds, starts work on its own goroutine
// with a context derived from parent. Only one worker may run at a time.
func (r *runner) launch(parent context.Context, prepare func() error, work func(ctx context.Context)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return ErrAlreadyRunning
	}
	if err := prepare(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	r.cancel, r.done = cancel, done

	go func() {
		defer r.finish(done)
		work(ctx)
	}()

	return nil
}

func (r *runner) finish(done chan struct{}) {
	r.mu.Lock()
	if r.done == done {
		r.cancel()
		r.cancel, r.done = nil, nil
	}
	r.mu.Unlock()

	close(done)
}

// stop cancels the worker and waits for it to exit. It is a no-op when idle.
func (r *runner) stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *runner) running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cancel != nil
}
