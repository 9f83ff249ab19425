package render

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/editor"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/pkg/models"
)

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recordingNotifier) Close() error { return nil }

func (r *recordingNotifier) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notifications...)
}

func testEditorConfig() config.EditorConfig {
	return config.EditorConfig{
		RenderTickInterval:  time.Millisecond,
		RenderStep:          34,
		RenderFinalizePause: 2 * time.Millisecond,
		ExportDuration:      5 * time.Millisecond,
	}
}

func newTestManager(t *testing.T) (*Manager, *recordingNotifier) {
	t.Helper()
	logger, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return NewManager(testEditorConfig(), logger, notifier), notifier
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestRenderRunsToCompletion(t *testing.T) {
	m, notifier := newTestManager(t)
	s := editor.NewSession("s1")

	require.NoError(t, m.Start(s, Options{Format: "mp4"}))

	waitFor(t, 2*time.Second, func() bool {
		p := s.Project()
		return !p.Busy() && p.ExportRef != ""
	})

	p := s.Project()
	assert.Equal(t, 100, p.RenderProgress)
	assert.False(t, p.IsRendering)
	assert.False(t, p.IsExporting)
	assert.True(t, strings.HasPrefix(p.ExportRef, "exports/"))
	assert.True(t, strings.HasSuffix(p.ExportRef, ".mp4"))

	waitFor(t, time.Second, func() bool {
		return len(notifier.all()) == 1
	})
	n := notifier.all()[0]
	assert.Equal(t, "Export complete!", n.Title)
	assert.Equal(t, models.SeverityInfo, n.Severity)
	assert.Equal(t, "s1", n.SessionID)
}

func TestRenderRejectsConcurrentStart(t *testing.T) {
	m, _ := newTestManager(t)
	s := editor.NewSession("s1")

	require.NoError(t, m.Start(s, Options{}))
	assert.ErrorIs(t, m.Start(s, Options{}), editor.ErrRenderInProgress)

	m.Cancel(s)
}

func TestRenderCompletesExactlyOnce(t *testing.T) {
	m, notifier := newTestManager(t)
	s := editor.NewSession("s1")

	require.NoError(t, m.Start(s, Options{}))

	waitFor(t, 2*time.Second, func() bool {
		p := s.Project()
		return !p.Busy() && p.ExportRef != ""
	})

	// Give any stray second completion time to fire.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, notifier.all(), 1)
}

func TestCancelDuringRenderReturnsToIdle(t *testing.T) {
	m, notifier := newTestManager(t)
	s := editor.NewSession("s1")

	// A long tick interval keeps the job in the rendering phase.
	m.cfg.RenderTickInterval = time.Hour
	require.NoError(t, m.Start(s, Options{}))
	require.True(t, s.Project().IsRendering)

	m.Cancel(s)

	p := s.Project()
	assert.False(t, p.Busy())
	assert.Equal(t, 0, p.RenderProgress)
	assert.False(t, m.Active("s1"))

	// No export, no notification.
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, notifier.all())
	assert.Empty(t, s.Project().ExportRef)

	// A fresh render may start after cancellation.
	m.cfg.RenderTickInterval = time.Millisecond
	require.NoError(t, m.Start(s, Options{}))
	m.Cancel(s)
}

func TestCancelUnknownSessionIsNoOp(t *testing.T) {
	m, _ := newTestManager(t)
	s := editor.NewSession("s1")

	m.Cancel(s)
	assert.False(t, s.Project().Busy())
}

func TestCancelAllStopsEveryJob(t *testing.T) {
	m, _ := newTestManager(t)
	m.cfg.RenderTickInterval = time.Hour

	s1 := editor.NewSession("s1")
	s2 := editor.NewSession("s2")
	require.NoError(t, m.Start(s1, Options{}))
	require.NoError(t, m.Start(s2, Options{}))

	m.CancelAll()

	assert.False(t, m.Active("s1"))
	assert.False(t, m.Active("s2"))
}
