package models

import "time"

// SnapshotVersion is the current snapshot schema version. Loads reject
// snapshots declaring a newer version than this build understands.
const SnapshotVersion = 1

// Snapshot is the complete persisted state of an editing session. The
// video slice is deliberately absent.
type Snapshot struct {
	Version  int           `json:"version"`
	Timeline TimelineState `json:"timeline"`
	Overlays OverlaysState `json:"overlays"`
	Audio    AudioState    `json:"audio"`
	Project  ProjectState  `json:"project"`
}

// SavedProject is a named snapshot in the durable project library.
type SavedProject struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Snapshot  Snapshot  `json:"snapshot" db:"snapshot"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a user-facing event raised by an editor operation.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	SessionID   string    `json:"session_id"`
	Timestamp   time.Time `json:"timestamp"`
}
