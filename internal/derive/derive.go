// Package derive computes presentation values from editing state. All
// functions are pure and stateless: they take models plus the playhead time
// or zoom factor and return derived values, never mutating their inputs.
package derive

import (
	"fmt"
	"math"

	"github.com/emberstudio/ember/pkg/models"
)

// VisibleTextOverlays returns the text overlays active at time t, in
// collection order. The time window is boundary-inclusive on both ends.
func VisibleTextOverlays(overlays []models.TextOverlay, t float64) []models.TextOverlay {
	var visible []models.TextOverlay
	for _, o := range overlays {
		if o.VisibleAt(t) {
			visible = append(visible, o)
		}
	}
	return visible
}

// VisibleImageOverlays returns the image overlays active at time t.
func VisibleImageOverlays(overlays []models.ImageOverlay, t float64) []models.ImageOverlay {
	var visible []models.ImageOverlay
	for _, o := range overlays {
		if o.VisibleAt(t) {
			visible = append(visible, o)
		}
	}
	return visible
}

// PlayheadFraction returns the playhead position as a fraction of the total
// duration. A zero or negative duration yields 0 rather than dividing.
func PlayheadFraction(t, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return t / duration
}

// ClipBox is the pixel-independent geometry of a clip on the timeline,
// expressed as percentages of the track width at the given zoom.
type ClipBox struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// ClipGeometry computes the timeline box for a clip. Duration must be
// positive; callers guard the empty-timeline case.
func ClipGeometry(clip models.Clip, duration, zoom float64) ClipBox {
	if duration <= 0 {
		return ClipBox{}
	}
	return ClipBox{
		LeftPercent:  clip.TimelineStart / duration * 100 * zoom,
		WidthPercent: (clip.TimelineEnd - clip.TimelineStart) / duration * 100 * zoom,
	}
}

// Timecode formats seconds as "MM:SS.mmm" with 2/2/3 digit zero padding.
// Components are floored, matching display semantics.
func Timecode(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	millis := int(math.Floor(math.Mod(seconds, 1) * 1000))

	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// RulerMarks returns n evenly spaced ruler labels covering the duration,
// starting at 00:00.000.
func RulerMarks(duration float64, n int) []string {
	if n <= 0 {
		return nil
	}
	marks := make([]string, n)
	for i := 0; i < n; i++ {
		marks[i] = Timecode(float64(i) * duration / float64(n))
	}
	return marks
}

// ClampZoom bounds a zoom factor to the timeline's view policy.
func ClampZoom(zoom float64) float64 {
	return math.Min(math.Max(zoom, models.ZoomMin), models.ZoomMax)
}
