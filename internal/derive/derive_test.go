package derive

import (
	"testing"

	"github.com/emberstudio/ember/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestTimecode(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.000"},
		{65.5, "01:05.500"},
		{599.999, "09:59.999"},
		{3.25, "00:03.250"},
		{60, "01:00.000"},
		{125.001, "02:05.001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Timecode(tt.seconds))
		})
	}
}

func TestPlayheadFraction(t *testing.T) {
	assert.Equal(t, 0.5, PlayheadFraction(5, 10))
	assert.Equal(t, 1.0, PlayheadFraction(10, 10))

	// No divide by zero: any time over a zero duration is 0.
	assert.Equal(t, 0.0, PlayheadFraction(0, 0))
	assert.Equal(t, 0.0, PlayheadFraction(42, 0))
}

func TestClipGeometry(t *testing.T) {
	clip := models.Clip{TimelineStart: 2, TimelineEnd: 7}

	box := ClipGeometry(clip, 10, 1)
	assert.InDelta(t, 20, box.LeftPercent, 1e-9)
	assert.InDelta(t, 50, box.WidthPercent, 1e-9)

	// Zoom scales both coordinates linearly.
	zoomed := ClipGeometry(clip, 10, 2.5)
	assert.InDelta(t, 50, zoomed.LeftPercent, 1e-9)
	assert.InDelta(t, 125, zoomed.WidthPercent, 1e-9)
}

func TestVisibleTextOverlays(t *testing.T) {
	overlays := []models.TextOverlay{
		{ID: "a", StartTime: 0, EndTime: 4},
		{ID: "b", StartTime: 3, EndTime: 8},
		{ID: "c", StartTime: 9, EndTime: 12},
	}

	visible := VisibleTextOverlays(overlays, 3)
	assert.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].ID)
	assert.Equal(t, "b", visible[1].ID)

	// Boundary-exact: visible at endTime, not past it.
	assert.Len(t, VisibleTextOverlays(overlays, 8), 1)
	assert.Empty(t, VisibleTextOverlays(overlays, 8.01))
}

func TestVisibleImageOverlays(t *testing.T) {
	overlays := []models.ImageOverlay{
		{ID: "logo", StartTime: 1, EndTime: 6},
	}

	assert.Len(t, VisibleImageOverlays(overlays, 1), 1)
	assert.Len(t, VisibleImageOverlays(overlays, 6), 1)
	assert.Empty(t, VisibleImageOverlays(overlays, 0.99))
}

func TestRulerMarks(t *testing.T) {
	marks := RulerMarks(100, 10)
	assert.Len(t, marks, 10)
	assert.Equal(t, "00:00.000", marks[0])
	assert.Equal(t, "00:10.000", marks[1])
	assert.Equal(t, "01:30.000", marks[9])

	assert.Nil(t, RulerMarks(100, 0))
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 1.0, ClampZoom(0.2))
	assert.Equal(t, 5.0, ClampZoom(7))
	assert.Equal(t, 2.5, ClampZoom(2.5))
}
