package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/internal/metrics"
	"github.com/emberstudio/ember/pkg/models"
)

// ErrSessionNotFound is returned when no session exists for an id, in
// memory or in the snapshot store.
var ErrSessionNotFound = errors.New("session not found")

// SnapshotStore is the persistence surface the manager needs. Every
// committed change writes the full snapshot; loads rehydrate sessions that
// are not currently in memory.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, sessionID string, snap models.Snapshot) error
	LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error)
	DeleteSnapshot(ctx context.Context, sessionID string) error
	ListSessionIDs(ctx context.Context) ([]string, error)
}

// Manager owns the live sessions and keeps each one's snapshot current in
// the store.
type Manager struct {
	store  SnapshotStore
	logger *logging.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(store SnapshotStore, logger *logging.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a fresh session and persists its initial snapshot.
func (m *Manager) Create(ctx context.Context) *Session {
	s := NewSession(uuid.New().String())
	m.attach(s)

	if err := m.store.SaveSnapshot(ctx, s.ID, s.Snapshot()); err != nil {
		metrics.RecordSnapshotWrite("failed")
		m.logger.WithError(err).WithSessionID(s.ID).Error("Failed to persist initial snapshot")
	} else {
		metrics.RecordSnapshotWrite("ok")
	}

	m.logger.WithSessionID(s.ID).Info("Session created")
	return s
}

// Open starts a new session seeded from an existing snapshot and persists
// it under a fresh id.
func (m *Manager) Open(ctx context.Context, snap models.Snapshot) (*Session, error) {
	s := Restore(uuid.New().String(), snap)
	m.attach(s)

	if err := m.store.SaveSnapshot(ctx, s.ID, s.Snapshot()); err != nil {
		metrics.RecordSnapshotWrite("failed")
		return nil, err
	}
	metrics.RecordSnapshotWrite("ok")

	m.logger.WithSessionID(s.ID).Info("Session opened from saved project")
	return s, nil
}

// Get returns the live session, rehydrating it from the store if needed.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	snap, err := m.store.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have rehydrated the session meanwhile.
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	s := Restore(id, *snap)
	m.attachLocked(s)
	m.logger.WithSessionID(id).Info("Session restored from snapshot")
	return s, nil
}

// Delete drops the live session and its stored snapshot.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		metrics.SessionsActive.Dec()
	}
	m.mu.Unlock()

	if s != nil {
		s.SetOnChange(nil)
	}

	if err := m.store.DeleteSnapshot(ctx, id); err != nil {
		return err
	}
	if !ok {
		// Not in memory; the snapshot may still have existed.
		m.logger.WithSessionID(id).Debug("Deleted snapshot for inactive session")
	}
	return nil
}

// List returns the ids of every session with a stored snapshot.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.ListSessionIDs(ctx)
}

func (m *Manager) attach(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachLocked(s)
}

func (m *Manager) attachLocked(s *Session) {
	s.SetOnChange(func(change Change, snap models.Snapshot) {
		metrics.RecordCommand(change.Slice)
		m.logger.LogCommand(s.ID, change.Slice, "commit")

		if err := m.store.SaveSnapshot(context.Background(), s.ID, snap); err != nil {
			metrics.RecordSnapshotWrite("failed")
			m.logger.WithError(err).WithSessionID(s.ID).Error("Failed to persist snapshot")
			return
		}
		metrics.RecordSnapshotWrite("ok")
	})
	m.sessions[s.ID] = s
	metrics.SessionsActive.Inc()
}
