package models

// OverlayDefaultDuration is the length in seconds of a newly placed
// overlay's visibility window before clamping.
const OverlayDefaultDuration = 5.0

// Position is an overlay anchor in percent of the frame, 0-100 on each axis.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an overlay box in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextStyle is the full styling block of a text overlay. Patches replace
// the whole block, never individual fields.
type TextStyle struct {
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
	Color      string `json:"color"`
	Bold       bool   `json:"bold"`
	Italic     bool   `json:"italic"`
	Underline  bool   `json:"underline"`
}

// DefaultTextStyle returns the style applied to newly created text overlays.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontFamily: "Arial",
		FontSize:   24,
		Color:      "#FFFFFF",
	}
}

// TextOverlay is a styled text element visible during [StartTime, EndTime].
type TextOverlay struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	StartTime float64   `json:"start_time"`
	EndTime   float64   `json:"end_time"`
	Position  Position  `json:"position"`
	Style     TextStyle `json:"style"`
}

// VisibleAt reports whether the overlay is visible at time t. Both window
// boundaries are inclusive.
func (o TextOverlay) VisibleAt(t float64) bool {
	return t >= o.StartTime && t <= o.EndTime
}

// ImageStyle is the styling block of an image overlay.
type ImageStyle struct {
	Opacity      float64 `json:"opacity"`
	BorderColor  string  `json:"border_color"`
	BorderWidth  int     `json:"border_width"`
	CornerRadius int     `json:"corner_radius"`
}

// DefaultImageStyle returns the style applied to newly created image
// overlays.
func DefaultImageStyle() ImageStyle {
	return ImageStyle{
		Opacity:     1,
		BorderColor: "#ffffff",
		BorderWidth: 0,
	}
}

// ImageOverlay is an image element visible during [StartTime, EndTime].
type ImageOverlay struct {
	ID        string     `json:"id"`
	SourceRef string     `json:"source_ref"`
	StartTime float64    `json:"start_time"`
	EndTime   float64    `json:"end_time"`
	Position  Position   `json:"position"`
	Size      Size       `json:"size"`
	Style     ImageStyle `json:"style"`
}

// VisibleAt reports whether the overlay is visible at time t.
func (o ImageOverlay) VisibleAt(t float64) bool {
	return t >= o.StartTime && t <= o.EndTime
}

// TextOverlayPatch is a partial text-overlay update. A non-nil Style
// replaces the stored style wholesale.
type TextOverlayPatch struct {
	Text      *string    `json:"text,omitempty"`
	StartTime *float64   `json:"start_time,omitempty"`
	EndTime   *float64   `json:"end_time,omitempty"`
	Position  *Position  `json:"position,omitempty"`
	Style     *TextStyle `json:"style,omitempty"`
}

// Apply merges the patch into the overlay.
func (p TextOverlayPatch) Apply(o *TextOverlay) {
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.StartTime != nil {
		o.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		o.EndTime = *p.EndTime
	}
	if p.Position != nil {
		o.Position = *p.Position
	}
	if p.Style != nil {
		o.Style = *p.Style
	}
}

// ImageOverlayPatch is a partial image-overlay update with the same merge
// semantics as TextOverlayPatch.
type ImageOverlayPatch struct {
	SourceRef *string     `json:"source_ref,omitempty"`
	StartTime *float64    `json:"start_time,omitempty"`
	EndTime   *float64    `json:"end_time,omitempty"`
	Position  *Position   `json:"position,omitempty"`
	Size      *Size       `json:"size,omitempty"`
	Style     *ImageStyle `json:"style,omitempty"`
}

// Apply merges the patch into the overlay.
func (p ImageOverlayPatch) Apply(o *ImageOverlay) {
	if p.SourceRef != nil {
		o.SourceRef = *p.SourceRef
	}
	if p.StartTime != nil {
		o.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		o.EndTime = *p.EndTime
	}
	if p.Position != nil {
		o.Position = *p.Position
	}
	if p.Size != nil {
		o.Size = *p.Size
	}
	if p.Style != nil {
		o.Style = *p.Style
	}
}

// OverlayKind discriminates the overlay selection union.
type OverlayKind string

const (
	OverlayKindNone  OverlayKind = ""
	OverlayKindText  OverlayKind = "text"
	OverlayKindImage OverlayKind = "image"
)

// OverlaySelection is the shared selection across both overlay kinds. At
// most one overlay is selected at a time; selecting one kind deselects the
// other as a single state change.
type OverlaySelection struct {
	Kind OverlayKind `json:"kind"`
	ID   string      `json:"id"`
}

// None reports whether nothing is selected.
func (s OverlaySelection) None() bool {
	return s.Kind == OverlayKindNone || s.ID == ""
}

// OverlaysState holds both overlay collections and the shared selection.
type OverlaysState struct {
	TextOverlays  []TextOverlay    `json:"text_overlays"`
	ImageOverlays []ImageOverlay   `json:"image_overlays"`
	Selection     OverlaySelection `json:"selection"`
}
