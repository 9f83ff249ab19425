package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextOverlayVisibleAt(t *testing.T) {
	overlay := TextOverlay{ID: "t1", StartTime: 3, EndTime: 8}

	tests := []struct {
		name    string
		time    float64
		visible bool
	}{
		{"before window", 2.99, false},
		{"start boundary", 3, true},
		{"inside window", 5.5, true},
		{"end boundary", 8, true},
		{"after window", 8.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.visible, overlay.VisibleAt(tt.time))
		})
	}
}

func TestImageOverlayVisibleAt(t *testing.T) {
	overlay := ImageOverlay{ID: "i1", StartTime: 0, EndTime: 5}

	assert.True(t, overlay.VisibleAt(0))
	assert.True(t, overlay.VisibleAt(5))
	assert.False(t, overlay.VisibleAt(5.001))
}

func TestAudioTrackEffectiveVolume(t *testing.T) {
	track := AudioTrack{Volume: 0.8}
	assert.Equal(t, 0.8, track.EffectiveVolume())

	track.IsMuted = true
	assert.Equal(t, 0.0, track.EffectiveVolume())
}

func TestEffectiveMainVolumeWhileMuted(t *testing.T) {
	audio := NewAudioState()
	audio.IsMuted = true

	// Changing the stored volume while muted must not change the
	// effective output until unmuted.
	audio.MainVolume = 0.6
	assert.Equal(t, 0.0, audio.EffectiveMainVolume())

	audio.IsMuted = false
	assert.Equal(t, 0.6, audio.EffectiveMainVolume())
}

func TestMasterAndTrackMuteAreIndependent(t *testing.T) {
	audio := NewAudioState()
	audio.Tracks = []AudioTrack{{ID: "a1", Volume: 0.5}}
	audio.IsMuted = true

	// Master mute silences the master source only; the track keeps its
	// own effective volume.
	assert.Equal(t, 0.0, audio.EffectiveMainVolume())
	assert.Equal(t, 0.5, audio.Tracks[0].EffectiveVolume())
}

func TestClipPatchApply(t *testing.T) {
	clip := Clip{ID: "c1", TimelineStart: 0, TimelineEnd: 10, DisplayName: "intro.mp4"}

	end := 7.5
	name := "intro-trimmed.mp4"
	patch := ClipPatch{TimelineEnd: &end, DisplayName: &name}
	patch.Apply(&clip)

	assert.Equal(t, 7.5, clip.TimelineEnd)
	assert.Equal(t, "intro-trimmed.mp4", clip.DisplayName)
	assert.Equal(t, 0.0, clip.TimelineStart)
}

func TestTextOverlayPatchReplacesStyleWholesale(t *testing.T) {
	overlay := TextOverlay{ID: "t1", Style: DefaultTextStyle()}
	overlay.Style.Bold = true

	// A patched style replaces the stored style object; single-field
	// changes must arrive pre-merged by the caller.
	style := TextStyle{FontFamily: "Georgia", FontSize: 32, Color: "#FF0000"}
	patch := TextOverlayPatch{Style: &style}
	patch.Apply(&overlay)

	assert.Equal(t, "Georgia", overlay.Style.FontFamily)
	assert.False(t, overlay.Style.Bold)
}

func TestOverlaySelectionNone(t *testing.T) {
	var sel OverlaySelection
	assert.True(t, sel.None())

	sel = OverlaySelection{Kind: OverlayKindText, ID: "t1"}
	assert.False(t, sel.None())
}

func TestProjectStateBusy(t *testing.T) {
	p := NewProjectState()
	assert.False(t, p.Busy())

	p.IsRendering = true
	assert.True(t, p.Busy())

	p.IsRendering = false
	p.IsExporting = true
	assert.True(t, p.Busy())
}
