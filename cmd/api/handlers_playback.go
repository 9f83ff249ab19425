package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/internal/derive"
)

// Set playhead endpoint
func (api *API) setPlayhead(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Time *float64 `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetPlayhead(*req.Time)
	c.JSON(http.StatusOK, gin.H{"current_time": s.Video().CurrentTime})
}

// Set playback endpoint
func (api *API) setPlayback(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Playing *bool `json:"playing" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetPlaying(*req.Playing)
	c.JSON(http.StatusOK, gin.H{"is_playing": s.Video().IsPlaying})
}

// Rewind endpoint
func (api *API) rewind(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	s.Rewind()
	c.JSON(http.StatusOK, gin.H{"current_time": 0})
}

// Preview endpoint: everything the player surface needs at the current
// playhead, derived on read.
func (api *API) preview(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	v := s.Video()
	overlays := s.Overlays()
	audio := s.Audio()

	trackVolumes := make(map[string]float64, len(audio.Tracks))
	for _, track := range audio.Tracks {
		trackVolumes[track.ID] = track.EffectiveVolume()
	}

	c.JSON(http.StatusOK, gin.H{
		"current_time":      v.CurrentTime,
		"timecode":          derive.Timecode(v.CurrentTime),
		"duration":          v.Duration,
		"duration_timecode": derive.Timecode(v.Duration),
		"playhead_fraction": derive.PlayheadFraction(v.CurrentTime, v.Duration),
		"is_playing":        v.IsPlaying,
		"video_ref":         v.VideoRef,
		"thumbnail_ref":     v.ThumbnailRef,
		"visible_text":      derive.VisibleTextOverlays(overlays.TextOverlays, v.CurrentTime),
		"visible_images":    derive.VisibleImageOverlays(overlays.ImageOverlays, v.CurrentTime),
		"main_volume":       audio.EffectiveMainVolume(),
		"track_volumes":     trackVolumes,
	})
}
