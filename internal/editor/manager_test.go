package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/pkg/models"
)

type memorySnapshotStore struct {
	snaps map[string]models.Snapshot
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{snaps: make(map[string]models.Snapshot)}
}

func (m *memorySnapshotStore) SaveSnapshot(_ context.Context, id string, snap models.Snapshot) error {
	m.snaps[id] = snap
	return nil
}

func (m *memorySnapshotStore) LoadSnapshot(_ context.Context, id string) (*models.Snapshot, error) {
	snap, ok := m.snaps[id]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *memorySnapshotStore) DeleteSnapshot(_ context.Context, id string) error {
	delete(m.snaps, id)
	return nil
}

func (m *memorySnapshotStore) ListSessionIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range m.snaps {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestManager(t *testing.T) (*Manager, *memorySnapshotStore) {
	t.Helper()
	logger, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	store := newMemorySnapshotStore()
	return NewManager(store, logger), store
}

func TestManagerCreatePersistsInitialSnapshot(t *testing.T) {
	m, store := newTestManager(t)

	s := m.Create(context.Background())
	require.NotEmpty(t, s.ID)

	snap, ok := store.snaps[s.ID]
	require.True(t, ok)
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.Equal(t, "Untitled Project", snap.Project.Name)
}

func TestManagerPersistsOnEveryCommit(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s := m.Create(ctx)
	s.AddClip(newClip("c1", 0, 10))
	s.SetProjectName("cut one")

	snap := store.snaps[s.ID]
	assert.Len(t, snap.Timeline.Clips, 1)
	assert.Equal(t, "cut one", snap.Project.Name)
	assert.True(t, snap.Project.IsDirty)
}

func TestManagerGetReturnsLiveSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s := m.Create(ctx)
	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManagerGetRehydratesFromStore(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s := m.Create(ctx)
	s.AddClip(newClip("c1", 0, 10))
	s.SetProjectName("persisted")

	// Simulate a restart: drop the live session, keep the snapshot.
	m2 := NewManager(store, m.logger)
	restored, err := m2.Get(ctx, s.ID)
	require.NoError(t, err)

	assert.Len(t, restored.Timeline().Clips, 1)
	assert.Equal(t, "persisted", restored.Project().Name)
	assert.Empty(t, restored.Video().VideoRef)

	// The rehydrated session persists subsequent commits too.
	restored.SetProjectName("again")
	assert.Equal(t, "again", store.snaps[s.ID].Project.Name)
}

func TestManagerGetUnknownSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerDeleteRemovesSnapshot(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	s := m.Create(ctx)
	require.NoError(t, m.Delete(ctx, s.ID))

	_, ok := store.snaps[s.ID]
	assert.False(t, ok)

	_, err := m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerList(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	a := m.Create(ctx)
	b := m.Create(ctx)

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}
