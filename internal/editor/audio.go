package editor

import (
	"github.com/google/uuid"

	"github.com/emberstudio/ember/pkg/models"
)

// AddTrack appends a new audio track with default mix settings: placed at
// the start of the timeline, full volume, unmuted.
func (s *Session) AddTrack(name, sourceRef string, duration float64) models.AudioTrack {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := models.AudioTrack{
		ID:        uuid.New().String(),
		Name:      name,
		SourceRef: sourceRef,
		StartTime: 0,
		Duration:  duration,
		Volume:    1,
	}
	s.audio.Tracks = append(s.audio.Tracks, track)
	s.commit(Change{Slice: SliceAudio})
	return track
}

// UpdateTrack merges a partial update into the matching track. Unknown ids
// are silent no-ops.
func (s *Session) UpdateTrack(id string, patch models.AudioTrackPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.audio.Tracks {
		if s.audio.Tracks[i].ID == id {
			patch.Apply(&s.audio.Tracks[i])
			s.commit(Change{Slice: SliceAudio})
			return
		}
	}
}

// RemoveTrack filters the track out. The selection is left as-is.
func (s *Session) RemoveTrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.audio.Tracks[:0]
	removed := false
	for _, t := range s.audio.Tracks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.audio.Tracks = kept
	if removed {
		s.commit(Change{Slice: SliceAudio})
	}
}

// SelectTrack sets the selected-track pointer; an empty id clears it.
func (s *Session) SelectTrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audio.SelectedTrackID = id
	s.commit(Change{Slice: SliceAudio})
}

// SetMainVolume sets the stored master volume. The effective output stays
// at zero while muted; master volume and per-track volumes apply to
// separate sources and are never multiplied together.
func (s *Session) SetMainVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audio.MainVolume = clampUnit(v)
	s.commit(Change{Slice: SliceAudio})
}

// ToggleMute sets the master mute flag, independent of per-track mutes.
func (s *Session) ToggleMute(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audio.IsMuted = muted
	s.commit(Change{Slice: SliceAudio})
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
