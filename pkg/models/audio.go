package models

// AudioTrack is one audio element in the mix, independent of the timeline
// clip sequence.
type AudioTrack struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SourceRef string  `json:"source_ref"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Volume    float64 `json:"volume"`
	IsMuted   bool    `json:"is_muted"`
}

// EffectiveVolume returns the track's audible volume: zero while muted, the
// stored volume otherwise.
func (t AudioTrack) EffectiveVolume() float64 {
	if t.IsMuted {
		return 0
	}
	return t.Volume
}

// AudioTrackPatch is a partial track update. Nil fields are left untouched.
type AudioTrackPatch struct {
	Name      *string  `json:"name,omitempty"`
	StartTime *float64 `json:"start_time,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	IsMuted   *bool    `json:"is_muted,omitempty"`
}

// Apply merges the patch into the track.
func (p AudioTrackPatch) Apply(t *AudioTrack) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Volume != nil {
		t.Volume = *p.Volume
	}
	if p.IsMuted != nil {
		t.IsMuted = *p.IsMuted
	}
}

// AudioState is the session's audio mix. MainVolume and IsMuted apply to
// the master source only; per-track volume and mute are independent of
// them and the two are never multiplied together.
type AudioState struct {
	Tracks          []AudioTrack `json:"tracks"`
	SelectedTrackID string       `json:"selected_track_id"`
	MainVolume      float64      `json:"main_volume"`
	IsMuted         bool         `json:"is_muted"`
}

// NewAudioState returns the default mix: no tracks, full master volume,
// unmuted.
func NewAudioState() AudioState {
	return AudioState{MainVolume: 1}
}

// EffectiveMainVolume returns the audible master volume. The stored volume
// is retained while muted so unmuting restores it.
func (a AudioState) EffectiveMainVolume() float64 {
	if a.IsMuted {
		return 0
	}
	return a.MainVolume
}
