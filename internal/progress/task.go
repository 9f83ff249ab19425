// Package progress provides the cancelable timer task used to simulate
// long-running work (upload ingest, render passes). A task ticks at a fixed
// interval until its tick callback reports completion, then runs a single
// deferred completion callback. Cancel stops the task; a canceled task never
// fires another tick or its completion callback.
package progress

import (
	"sync"
	"time"
)

// TickFunc advances the simulated work by one step and reports whether the
// work is complete. Increment and completion check happen within one call,
// under the task lock, so no other tick can interleave mid-step.
type TickFunc func() (done bool)

// Task is a repeating timer handle with explicit cancellation.
type Task struct {
	mu       sync.Mutex
	ticker   *time.Ticker
	stop     chan struct{}
	stopped  bool
	interval time.Duration
}

// Start launches a task ticking every interval. When onTick reports done,
// ticking stops and onDone (if non-nil) runs once, after delay.
func Start(interval time.Duration, onTick TickFunc, delay time.Duration, onDone func()) *Task {
	t := &Task{
		ticker:   time.NewTicker(interval),
		stop:     make(chan struct{}),
		interval: interval,
	}

	go t.run(onTick, delay, onDone)
	return t
}

func (t *Task) run(onTick TickFunc, delay time.Duration, onDone func()) {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			if t.tick(onTick) {
				t.Cancel()
				t.finish(delay, onDone)
				return
			}
		}
	}
}

// tick runs one step unless the task was canceled between the timer firing
// and the lock being acquired.
func (t *Task) tick(onTick TickFunc) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return false
	}
	return onTick()
}

func (t *Task) finish(delay time.Duration, onDone func()) {
	if onDone == nil {
		return
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	onDone()
}

// Cancel stops the task. It is safe to call more than once and safe to call
// from within the tick callback's goroutine. After Cancel returns, no
// further ticks fire.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	t.ticker.Stop()
	close(t.stop)
}

// Stopped reports whether the task has completed or been canceled.
func (t *Task) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
