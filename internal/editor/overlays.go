package editor

import (
	"github.com/google/uuid"

	"github.com/emberstudio/ember/pkg/models"
)

// AddTextOverlayAt creates a text overlay at the current playhead with
// default styling. The window runs from the playhead for the default
// duration, clamped to the project duration.
func (s *Session) AddTextOverlayAt(text string) models.TextOverlay {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlay := models.TextOverlay{
		ID:        uuid.New().String(),
		Text:      text,
		StartTime: s.video.CurrentTime,
		EndTime:   clampEnd(s.video.CurrentTime, s.video.Duration),
		Position:  models.Position{X: 50, Y: 50},
		Style:     models.DefaultTextStyle(),
	}
	s.overlays.TextOverlays = append(s.overlays.TextOverlays, overlay)
	s.commit(Change{Slice: SliceOverlays})
	return overlay
}

// AddImageOverlayAt creates an image overlay at the current playhead.
func (s *Session) AddImageOverlayAt(sourceRef string, size models.Size) models.ImageOverlay {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlay := models.ImageOverlay{
		ID:        uuid.New().String(),
		SourceRef: sourceRef,
		StartTime: s.video.CurrentTime,
		EndTime:   clampEnd(s.video.CurrentTime, s.video.Duration),
		Position:  models.Position{X: 50, Y: 50},
		Size:      size,
		Style:     models.DefaultImageStyle(),
	}
	s.overlays.ImageOverlays = append(s.overlays.ImageOverlays, overlay)
	s.commit(Change{Slice: SliceOverlays})
	return overlay
}

func clampEnd(start, duration float64) float64 {
	end := start + models.OverlayDefaultDuration
	if end > duration {
		return duration
	}
	return end
}

// UpdateTextOverlay merges a partial update into the matching text overlay.
// The merge is one level deep: a patched style replaces the stored style
// object wholesale. Unknown ids are silent no-ops.
func (s *Session) UpdateTextOverlay(id string, patch models.TextOverlayPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.overlays.TextOverlays {
		if s.overlays.TextOverlays[i].ID == id {
			patch.Apply(&s.overlays.TextOverlays[i])
			s.commit(Change{Slice: SliceOverlays})
			return
		}
	}
}

// RemoveTextOverlay filters the overlay out. The shared selection is left
// as-is, matching the editor's current behavior.
func (s *Session) RemoveTextOverlay(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.overlays.TextOverlays[:0]
	removed := false
	for _, o := range s.overlays.TextOverlays {
		if o.ID == id {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	s.overlays.TextOverlays = kept
	if removed {
		s.commit(Change{Slice: SliceOverlays})
	}
}

// UpdateImageOverlay merges a partial update into the matching image
// overlay, with the same one-level merge semantics as text overlays.
func (s *Session) UpdateImageOverlay(id string, patch models.ImageOverlayPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.overlays.ImageOverlays {
		if s.overlays.ImageOverlays[i].ID == id {
			patch.Apply(&s.overlays.ImageOverlays[i])
			s.commit(Change{Slice: SliceOverlays})
			return
		}
	}
}

// RemoveImageOverlay filters the overlay out.
func (s *Session) RemoveImageOverlay(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.overlays.ImageOverlays[:0]
	removed := false
	for _, o := range s.overlays.ImageOverlays {
		if o.ID == id {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	s.overlays.ImageOverlays = kept
	if removed {
		s.commit(Change{Slice: SliceOverlays})
	}
}

// SelectOverlay sets the shared overlay selection atomically. Selecting one
// kind implicitly deselects the other; the id is not validated against the
// collection named by the kind.
func (s *Session) SelectOverlay(sel models.OverlaySelection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.Kind == models.OverlayKindNone {
		sel = models.OverlaySelection{}
	}
	s.overlays.Selection = sel
	s.commit(Change{Slice: SliceOverlays})
}
