package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunsToCompletion(t *testing.T) {
	var mu sync.Mutex
	counter := 0
	done := make(chan struct{})

	task := Start(time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		counter += 20
		return counter >= 100
	}, 0, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 100, counter)
	assert.True(t, task.Stopped())
}

func TestTaskCompletionFiresOnce(t *testing.T) {
	var mu sync.Mutex
	counter := 0
	completions := 0
	done := make(chan struct{})

	Start(time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		counter += 50
		return counter >= 100
	}, 0, func() {
		mu.Lock()
		completions++
		mu.Unlock()
		done <- struct{}{}
	})

	<-done

	// Give any stray tick time to misfire before checking.
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, completions)
	assert.Equal(t, 100, counter)
}

func TestTaskCancelStopsTicks(t *testing.T) {
	var mu sync.Mutex
	counter := 0

	task := Start(time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		counter++
		return false
	}, 0, func() {
		t.Error("completion must not fire for a canceled task")
	})

	time.Sleep(10 * time.Millisecond)
	task.Cancel()

	mu.Lock()
	observed := counter
	mu.Unlock()

	require.True(t, task.Stopped())

	// No further ticks after Cancel returns.
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, observed, counter)
}

func TestTaskCancelIsIdempotent(t *testing.T) {
	task := Start(time.Millisecond, func() bool { return false }, 0, nil)

	task.Cancel()
	task.Cancel()
	assert.True(t, task.Stopped())
}
