package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberstudio/ember/pkg/models"
)

func newClip(id string, start, end float64) models.Clip {
	return models.Clip{
		ID:            id,
		Kind:          models.ClipKindVideo,
		TimelineStart: start,
		TimelineEnd:   end,
		SourceStart:   start,
		SourceEnd:     end,
		DisplayName:   id + ".mp4",
	}
}

func TestAddAndRemoveClip(t *testing.T) {
	s := NewSession("s1")

	s.AddClip(newClip("c1", 0, 10))
	s.AddClip(newClip("c2", 10, 15))
	assert.Len(t, s.Timeline().Clips, 2)

	s.RemoveClip("c1")
	tl := s.Timeline()
	require.Len(t, tl.Clips, 1)
	assert.Equal(t, "c2", tl.Clips[0].ID)

	// Removing an unknown id is a no-op.
	s.RemoveClip("missing")
	assert.Len(t, s.Timeline().Clips, 1)
}

func TestUpdateClipUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	s := NewSession("s1")
	s.AddClip(newClip("c1", 0, 10))

	before := s.Timeline().Clips

	end := 99.0
	s.UpdateClip("missing", models.ClipPatch{TimelineEnd: &end})

	after := s.Timeline().Clips
	require.Len(t, after, len(before))
	assert.Equal(t, before, after)
}

func TestReorderClipsPreservesIDSet(t *testing.T) {
	s := NewSession("s1")
	s.AddClip(newClip("c1", 0, 5))
	s.AddClip(newClip("c2", 5, 10))
	s.AddClip(newClip("c3", 10, 15))

	// Drag c3 to the front: splice out, splice in, replace wholesale.
	clips := s.Timeline().Clips
	moved := clips[2]
	reordered := append([]models.Clip{moved}, clips[:2]...)
	s.ReorderClips(reordered)

	after := s.Timeline().Clips
	require.Len(t, after, 3)
	assert.Equal(t, "c3", after[0].ID)
	assert.Equal(t, "c1", after[1].ID)
	assert.Equal(t, "c2", after[2].ID)

	ids := map[string]bool{}
	for _, c := range after {
		ids[c.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestRemoveSelectedClipKeepsSelection(t *testing.T) {
	s := NewSession("s1")
	s.AddClip(newClip("c1", 0, 10))
	s.SelectClip("c1")

	s.RemoveClip("c1")

	// Selection survives removal; clearing it is the caller's call.
	assert.Equal(t, "c1", s.Timeline().SelectedClipID)
}

func TestZoomClamping(t *testing.T) {
	s := NewSession("s1")

	assert.Equal(t, 5.0, s.SetZoom(9))
	assert.Equal(t, 5.0, s.ZoomIn())

	assert.Equal(t, 1.0, s.SetZoom(0.3))
	assert.Equal(t, 1.0, s.ZoomOut())

	assert.Equal(t, 1.5, s.ZoomIn())
	assert.Equal(t, 2.0, s.ZoomIn())
}

func TestAddTextOverlayAtPlayheadClampsToDuration(t *testing.T) {
	s := NewSession("s1")
	s.CompleteUpload("ref", "thumb", 10)
	s.SetPlayhead(3)

	o := s.AddTextOverlayAt("hello")
	assert.Equal(t, 3.0, o.StartTime)
	assert.Equal(t, 8.0, o.EndTime)

	// Near the end, the window clamps to the project duration.
	s.SetPlayhead(7)
	o = s.AddTextOverlayAt("late")
	assert.Equal(t, 7.0, o.StartTime)
	assert.Equal(t, 10.0, o.EndTime)
}

func TestUpdateOverlayUnknownIDIsNoOp(t *testing.T) {
	s := NewSession("s1")
	s.CompleteUpload("ref", "thumb", 10)
	s.AddTextOverlayAt("hello")

	before := s.Overlays().TextOverlays

	text := "changed"
	s.UpdateTextOverlay("missing", models.TextOverlayPatch{Text: &text})

	assert.Equal(t, before, s.Overlays().TextOverlays)
}

func TestSelectOverlayIsAtomicAcrossKinds(t *testing.T) {
	s := NewSession("s1")

	s.SelectOverlay(models.OverlaySelection{Kind: models.OverlayKindText, ID: "t1"})
	sel := s.Overlays().Selection
	assert.Equal(t, models.OverlayKindText, sel.Kind)
	assert.Equal(t, "t1", sel.ID)

	// Selecting an image replaces the text selection in one step.
	s.SelectOverlay(models.OverlaySelection{Kind: models.OverlayKindImage, ID: "i1"})
	sel = s.Overlays().Selection
	assert.Equal(t, models.OverlayKindImage, sel.Kind)
	assert.Equal(t, "i1", sel.ID)

	s.SelectOverlay(models.OverlaySelection{})
	assert.True(t, s.Overlays().Selection.None())
}

func TestAudioTrackLifecycle(t *testing.T) {
	s := NewSession("s1")

	track := s.AddTrack("beat.mp3", "assets/beat.mp3", 42)
	assert.Equal(t, 1.0, track.Volume)
	assert.Equal(t, 0.0, track.StartTime)
	assert.False(t, track.IsMuted)

	vol := 0.4
	s.UpdateTrack(track.ID, models.AudioTrackPatch{Volume: &vol})
	assert.Equal(t, 0.4, s.Audio().Tracks[0].Volume)

	s.UpdateTrack("missing", models.AudioTrackPatch{Volume: &vol})
	assert.Len(t, s.Audio().Tracks, 1)

	s.RemoveTrack(track.ID)
	assert.Empty(t, s.Audio().Tracks)
}

func TestMainVolumeWhileMuted(t *testing.T) {
	s := NewSession("s1")
	s.ToggleMute(true)
	s.SetMainVolume(0.7)

	audio := s.Audio()
	assert.Equal(t, 0.7, audio.MainVolume)
	assert.Equal(t, 0.0, audio.EffectiveMainVolume())

	s.ToggleMute(false)
	assert.Equal(t, 0.7, s.Audio().EffectiveMainVolume())
}

func TestOnlyMetadataSettersDirtyProject(t *testing.T) {
	s := NewSession("s1")
	require.False(t, s.Project().IsDirty)

	s.SetProjectName("Launch teaser")
	assert.True(t, s.Project().IsDirty)

	s.MarkSaved()
	require.False(t, s.Project().IsDirty)

	s.SetResolution(models.Resolution{Width: 1280, Height: 720})
	assert.True(t, s.Project().IsDirty)

	s.MarkSaved()
	s.SetFramerate(60)
	assert.True(t, s.Project().IsDirty)

	// Non-metadata commands never dirty the project.
	s.MarkSaved()
	s.AddClip(newClip("c1", 0, 5))
	s.SetMainVolume(0.5)
	s.SelectClip("c1")
	assert.False(t, s.Project().IsDirty)
}

func TestChangeListenerObservesDeltas(t *testing.T) {
	s := NewSession("s1")

	var changes []Change
	var lastSnap models.Snapshot
	s.SetOnChange(func(c Change, snap models.Snapshot) {
		changes = append(changes, c)
		lastSnap = snap
	})

	s.AddClip(newClip("c1", 0, 10))
	s.SetProjectName("renamed")

	require.Len(t, changes, 2)
	assert.Equal(t, SliceTimeline, changes[0].Slice)
	assert.False(t, changes[0].DirtiesProject)
	assert.Equal(t, SliceProject, changes[1].Slice)
	assert.True(t, changes[1].DirtiesProject)

	assert.Equal(t, models.SnapshotVersion, lastSnap.Version)
	assert.Len(t, lastSnap.Timeline.Clips, 1)
	assert.Equal(t, "renamed", lastSnap.Project.Name)
}

func TestRenderLifecycleTransitions(t *testing.T) {
	s := NewSession("s1")

	require.NoError(t, s.BeginRender())
	assert.True(t, s.Project().IsRendering)

	// A second render while busy is rejected.
	assert.ErrorIs(t, s.BeginRender(), ErrRenderInProgress)

	// Progress lands on exactly 100 even with an uneven step.
	var progress int
	var done bool
	for !done {
		progress, done = s.AdvanceRender(33)
	}
	assert.Equal(t, 100, progress)

	s.BeginExport()
	p := s.Project()
	assert.False(t, p.IsRendering)
	assert.True(t, p.IsExporting)

	assert.ErrorIs(t, s.BeginRender(), ErrRenderInProgress)

	s.CompleteExport("exports/final.mp4")
	p = s.Project()
	assert.False(t, p.Busy())
	assert.Equal(t, "exports/final.mp4", p.ExportRef)

	// Idle again: a new render may start.
	assert.NoError(t, s.BeginRender())
}

func TestCancelRenderResetsLifecycle(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.BeginRender())
	s.AdvanceRender(2)

	s.CancelRender()
	p := s.Project()
	assert.False(t, p.Busy())
	assert.Equal(t, 0, p.RenderProgress)
}

func TestUploadRollbackOnFailure(t *testing.T) {
	s := NewSession("s1")
	s.BeginUpload()
	s.AdvanceUpload(5)

	s.FailUpload()
	v := s.Video()
	assert.False(t, v.IsUploading)
	assert.Empty(t, v.VideoRef)
	assert.Empty(t, v.ThumbnailRef)
	assert.Equal(t, 0.0, v.Duration)
}

func TestRestoreDropsVideoSlice(t *testing.T) {
	s := NewSession("s1")
	s.CompleteUpload("ref", "thumb", 12)
	s.AddClip(newClip("c1", 0, 12))
	s.SetProjectName("persisted")

	restored := Restore("s2", s.Snapshot())

	assert.Len(t, restored.Timeline().Clips, 1)
	assert.Equal(t, "persisted", restored.Project().Name)

	// Media refs are session-local; a restored session has no video.
	assert.Empty(t, restored.Video().VideoRef)
	assert.Equal(t, 0.0, restored.Video().Duration)
}
