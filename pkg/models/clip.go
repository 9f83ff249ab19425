package models

// ClipKind identifies which track a clip occupies.
type ClipKind string

const (
	ClipKindVideo ClipKind = "video"
	ClipKindAudio ClipKind = "audio"
)

// Timeline zoom policy. Buttons step in halves, the slider in tenths, and
// both are clamped to the same range.
const (
	ZoomMin        = 1.0
	ZoomMax        = 5.0
	ZoomButtonStep = 0.5
	ZoomSliderStep = 0.1
)

// Clip is one segment on the timeline. Timeline positions and source trim
// points are both expressed in seconds.
type Clip struct {
	ID            string   `json:"id"`
	Kind          ClipKind `json:"kind"`
	TimelineStart float64  `json:"timeline_start"`
	TimelineEnd   float64  `json:"timeline_end"`
	SourceStart   float64  `json:"source_start"`
	SourceEnd     float64  `json:"source_end"`
	SourceRef     string   `json:"source_ref"`
	DisplayName   string   `json:"display_name"`
}

// Duration returns the clip's length on the timeline.
func (c Clip) Duration() float64 {
	return c.TimelineEnd - c.TimelineStart
}

// ClipPatch is a partial clip update. Nil fields are left untouched.
type ClipPatch struct {
	TimelineStart *float64 `json:"timeline_start,omitempty"`
	TimelineEnd   *float64 `json:"timeline_end,omitempty"`
	SourceStart   *float64 `json:"source_start,omitempty"`
	SourceEnd     *float64 `json:"source_end,omitempty"`
	DisplayName   *string  `json:"display_name,omitempty"`
}

// Apply merges the patch into the clip.
func (p ClipPatch) Apply(c *Clip) {
	if p.TimelineStart != nil {
		c.TimelineStart = *p.TimelineStart
	}
	if p.TimelineEnd != nil {
		c.TimelineEnd = *p.TimelineEnd
	}
	if p.SourceStart != nil {
		c.SourceStart = *p.SourceStart
	}
	if p.SourceEnd != nil {
		c.SourceEnd = *p.SourceEnd
	}
	if p.DisplayName != nil {
		c.DisplayName = *p.DisplayName
	}
}

// TimelineState is the ordered clip sequence plus view state. Render order
// follows collection order; there is no z-index field.
type TimelineState struct {
	Clips          []Clip  `json:"clips"`
	SelectedClipID string  `json:"selected_clip_id"`
	Zoom           float64 `json:"zoom"`
}
