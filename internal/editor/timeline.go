package editor

import (
	"github.com/emberstudio/ember/internal/derive"
	"github.com/emberstudio/ember/pkg/models"
)

// AddClip appends a clip to the sequence. The caller supplies a fresh
// unique id; the model does not de-duplicate.
func (s *Session) AddClip(clip models.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.Clips = append(s.timeline.Clips, clip)
	s.commit(Change{Slice: SliceTimeline})
}

// UpdateClip merges a partial update into the matching clip. An unknown id
// is a silent no-op and the collection is left untouched.
func (s *Session) UpdateClip(id string, patch models.ClipPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.timeline.Clips {
		if s.timeline.Clips[i].ID == id {
			patch.Apply(&s.timeline.Clips[i])
			s.commit(Change{Slice: SliceTimeline})
			return
		}
	}
}

// RemoveClip filters the clip out of the sequence. Removing an unknown id
// is a no-op. The selection is intentionally left as-is even when the
// removed clip was selected, matching the editor's current behavior.
func (s *Session) RemoveClip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.timeline.Clips[:0]
	removed := false
	for _, c := range s.timeline.Clips {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.timeline.Clips = kept
	if removed {
		s.commit(Change{Slice: SliceTimeline})
	}
}

// ReorderClips replaces the sequence wholesale. The caller is responsible
// for producing a valid permutation; the model accepts any replacement.
// Drag reorder works by removing the source clip, splicing it in at the
// target index and passing the whole result here.
func (s *Session) ReorderClips(clips []models.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.Clips = append([]models.Clip(nil), clips...)
	s.commit(Change{Slice: SliceTimeline})
}

// SelectClip sets the single selected-clip pointer; an empty id clears it.
func (s *Session) SelectClip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.SelectedClipID = id
	s.commit(Change{Slice: SliceTimeline})
}

// SetZoom sets the timeline zoom, clamped to [1, 5]. The bound is a view
// policy reproduced here for behavioral parity.
func (s *Session) SetZoom(zoom float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.Zoom = derive.ClampZoom(zoom)
	s.commit(Change{Slice: SliceTimeline})
	return s.timeline.Zoom
}

// ZoomIn steps the zoom up by the button increment.
func (s *Session) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.Zoom = derive.ClampZoom(s.timeline.Zoom + models.ZoomButtonStep)
	s.commit(Change{Slice: SliceTimeline})
	return s.timeline.Zoom
}

// ZoomOut steps the zoom down by the button increment.
func (s *Session) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.Zoom = derive.ClampZoom(s.timeline.Zoom - models.ZoomButtonStep)
	s.commit(Change{Slice: SliceTimeline})
	return s.timeline.Zoom
}
