// Package store is the live-snapshot persistence gateway. Each editing
// session maps to a single key holding the full serialized snapshot; writes
// are last-writer-wins with no cross-instance conflict detection, which is
// acceptable under the single-user, single-session-owner assumption.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emberstudio/ember/pkg/models"
)

// Store persists session snapshots in Redis.
type Store struct {
	client *redis.Client
}

// ErrSnapshotVersion is returned when a stored snapshot declares a newer
// schema version than this build understands.
var ErrSnapshotVersion = fmt.Errorf("unsupported snapshot version")

// New creates a new snapshot store.
func New(host string, port int, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("session:%s:snapshot", sessionID)
}

// SaveSnapshot writes the session snapshot. Snapshots have no TTL; a
// session survives until deleted.
func (s *Store) SaveSnapshot(ctx context.Context, sessionID string, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return s.client.Set(ctx, snapshotKey(sessionID), data, 0).Err()
}

// LoadSnapshot reads the session snapshot. A missing key returns (nil, nil).
func (s *Store) LoadSnapshot(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No snapshot for this session
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	if snap.Version > models.SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}

	return &snap, nil
}

// DeleteSnapshot removes the session snapshot.
func (s *Store) DeleteSnapshot(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, snapshotKey(sessionID)).Err()
}

// ListSessionIDs scans for sessions with a stored snapshot.
func (s *Store) ListSessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, "session:*:snapshot", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		// Strip "session:" prefix and ":snapshot" suffix
		id := key[len("session:") : len(key)-len(":snapshot")]
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return ids, nil
}

// Ping checks store health.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
