// Package editor holds the in-memory editing state for a session: the
// timeline clips, overlays, audio mix and project metadata, mutated through
// discrete commands. Every mutating command emits an explicit Change that
// the persistence gateway observes, so cross-slice side effects (such as
// which setters dirty the project) are visible in the command itself rather
// than buried in a setter.
package editor

import (
	"sync"

	"github.com/emberstudio/ember/pkg/models"
)

// Change is the delta emitted by a mutating command.
type Change struct {
	Slice          string
	DirtiesProject bool
}

// Slices a Change can touch.
const (
	SliceTimeline = "timeline"
	SliceOverlays = "overlays"
	SliceAudio    = "audio"
	SliceProject  = "project"
)

// ChangeListener observes committed changes together with the snapshot
// taken at commit time. The listener runs on the command's goroutine.
type ChangeListener func(change Change, snap models.Snapshot)

// Session is one editing session. All commands are safe for concurrent use;
// within a single command, increment and check happen atomically.
type Session struct {
	ID string

	mu       sync.RWMutex
	timeline models.TimelineState
	overlays models.OverlaysState
	audio    models.AudioState
	project  models.ProjectState
	video    models.VideoState
	onChange ChangeListener
}

// NewSession creates an empty session with default state.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		timeline: models.TimelineState{Zoom: models.ZoomMin},
		audio:    models.NewAudioState(),
		project:  models.NewProjectState(),
	}
}

// Restore creates a session from a persisted snapshot. The video slice is
// not part of snapshots: media refs are session-local and do not survive a
// reload, so the restored session starts with no loaded video.
func Restore(id string, snap models.Snapshot) *Session {
	s := NewSession(id)
	s.timeline = snap.Timeline
	s.overlays = snap.Overlays
	s.audio = snap.Audio
	s.project = snap.Project
	if s.timeline.Zoom < models.ZoomMin {
		s.timeline.Zoom = models.ZoomMin
	}
	return s
}

// SetOnChange installs the change listener. Pass nil to detach.
func (s *Session) SetOnChange(fn ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// commit applies the cross-slice side effects of a change and notifies the
// listener with a snapshot taken under the same lock. Callers must hold mu.
func (s *Session) commit(change Change) {
	if change.DirtiesProject {
		s.project.IsDirty = true
	}
	if s.onChange != nil {
		s.onChange(change, s.snapshotLocked())
	}
}

func (s *Session) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Version:  models.SnapshotVersion,
		Timeline: copyTimeline(s.timeline),
		Overlays: copyOverlays(s.overlays),
		Audio:    copyAudio(s.audio),
		Project:  s.project,
	}
}

// Snapshot returns a deep copy of the persisted state slices.
func (s *Session) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Timeline returns a copy of the timeline state.
func (s *Session) Timeline() models.TimelineState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTimeline(s.timeline)
}

// Overlays returns a copy of the overlays state.
func (s *Session) Overlays() models.OverlaysState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOverlays(s.overlays)
}

// Audio returns a copy of the audio mix state.
func (s *Session) Audio() models.AudioState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAudio(s.audio)
}

// Project returns the project metadata.
func (s *Session) Project() models.ProjectState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// Video returns the session-local video/transport state.
func (s *Session) Video() models.VideoState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.video
}

func copyTimeline(t models.TimelineState) models.TimelineState {
	out := t
	out.Clips = append([]models.Clip(nil), t.Clips...)
	return out
}

func copyOverlays(o models.OverlaysState) models.OverlaysState {
	out := o
	out.TextOverlays = append([]models.TextOverlay(nil), o.TextOverlays...)
	out.ImageOverlays = append([]models.ImageOverlay(nil), o.ImageOverlays...)
	return out
}

func copyAudio(a models.AudioState) models.AudioState {
	out := a
	out.Tracks = append([]models.AudioTrack(nil), a.Tracks...)
	return out
}
