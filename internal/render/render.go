// Package render drives the simulated render and export lifecycle for
// editing sessions. A render pass advances session progress on a fixed
// tick until it lands on 100, pauses briefly, runs an export phase and
// records the export ref. Cancellation at any phase returns the session
// to idle without firing later phases.
package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/editor"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/internal/metrics"
	"github.com/emberstudio/ember/internal/notify"
	"github.com/emberstudio/ember/internal/progress"
	"github.com/emberstudio/ember/pkg/models"
)

// Options selects the export container and quality label. Both are
// recorded in the export ref; the simulated pass does not vary with them.
type Options struct {
	Format  string `json:"format"`
	Quality string `json:"quality"`
}

// Manager runs at most one render job per session.
type Manager struct {
	cfg      config.EditorConfig
	logger   *logging.Logger
	notifier notify.Notifier

	mu   sync.Mutex
	jobs map[string]*job
}

type job struct {
	mu          sync.Mutex
	canceled    bool
	task        *progress.Task
	exportTimer *time.Timer
	startedAt   time.Time
}

// NewManager creates a render manager.
func NewManager(cfg config.EditorConfig, logger *logging.Logger, notifier notify.Notifier) *Manager {
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		jobs:     make(map[string]*job),
	}
}

// Start begins a render pass for the session. A session already rendering
// or exporting rejects the request with editor.ErrRenderInProgress.
func (m *Manager) Start(s *editor.Session, opts Options) error {
	if opts.Format == "" {
		opts.Format = "mp4"
	}

	if err := s.BeginRender(); err != nil {
		return err
	}

	j := &job{startedAt: time.Now()}

	m.mu.Lock()
	m.jobs[s.ID] = j
	m.mu.Unlock()

	metrics.RecordRenderStarted()
	m.logger.WithSessionID(s.ID).Info("Render started")

	j.mu.Lock()
	j.task = progress.Start(m.cfg.RenderTickInterval, func() bool {
		j.mu.Lock()
		canceled := j.canceled
		j.mu.Unlock()
		if canceled {
			// Stop ticking; the completion guard keeps the export
			// phase from firing.
			return true
		}

		p, done := s.AdvanceRender(m.cfg.RenderStep)
		m.logger.LogRenderProgress(s.ID, p)
		return done
	}, m.cfg.RenderFinalizePause, func() {
		m.beginExport(s, j, opts)
	})
	j.mu.Unlock()

	return nil
}

// beginExport transitions the session into the export phase unless the job
// was canceled during the finalize pause.
func (m *Manager) beginExport(s *editor.Session, j *job, opts Options) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.canceled {
		return
	}

	s.BeginExport()
	j.exportTimer = time.AfterFunc(m.cfg.ExportDuration, func() {
		m.completeExport(s, j, opts)
	})
}

func (m *Manager) completeExport(s *editor.Session, j *job, opts Options) {
	j.mu.Lock()
	if j.canceled {
		j.mu.Unlock()
		return
	}
	j.mu.Unlock()

	ref := fmt.Sprintf("exports/%s.%s", uuid.New().String(), opts.Format)
	s.CompleteExport(ref)

	m.mu.Lock()
	delete(m.jobs, s.ID)
	m.mu.Unlock()

	metrics.RecordRenderCompleted("completed", time.Since(j.startedAt).Seconds())
	m.logger.WithSessionID(s.ID).WithField("export_ref", ref).Info("Export complete")

	m.notifier.Notify(context.Background(), models.Notification{
		Title:       "Export complete!",
		Description: "Your video is ready to download.",
		Severity:    models.SeverityInfo,
		SessionID:   s.ID,
		Timestamp:   time.Now(),
	})
}

// Cancel stops the session's render job, whichever phase it is in, and
// resets the session lifecycle to idle. Canceling a session with no job is
// a no-op.
func (m *Manager) Cancel(s *editor.Session) {
	m.mu.Lock()
	j, ok := m.jobs[s.ID]
	if ok {
		delete(m.jobs, s.ID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	j.mu.Lock()
	j.canceled = true
	if j.task != nil {
		j.task.Cancel()
	}
	if j.exportTimer != nil {
		j.exportTimer.Stop()
	}
	j.mu.Unlock()

	s.CancelRender()
	metrics.RecordRenderCompleted("canceled", 0)
	m.logger.WithSessionID(s.ID).Info("Render canceled")
}

// CancelAll cancels every in-flight job. Used during shutdown.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	jobs := make(map[string]*job, len(m.jobs))
	for id, j := range m.jobs {
		jobs[id] = j
	}
	m.jobs = make(map[string]*job)
	m.mu.Unlock()

	for _, j := range jobs {
		j.mu.Lock()
		j.canceled = true
		if j.task != nil {
			j.task.Cancel()
		}
		if j.exportTimer != nil {
			j.exportTimer.Stop()
		}
		j.mu.Unlock()
	}
}

// Active reports whether the session has a render job in flight.
func (m *Manager) Active(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[sessionID]
	return ok
}
