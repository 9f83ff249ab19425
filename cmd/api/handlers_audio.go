package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/pkg/models"
)

// Update audio track endpoint
func (api *API) updateAudioTrack(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var patch models.AudioTrackPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.UpdateTrack(c.Param("trackID"), patch)
	c.JSON(http.StatusOK, gin.H{"audio": s.Audio()})
}

// Remove audio track endpoint
func (api *API) removeAudioTrack(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	s.RemoveTrack(c.Param("trackID"))
	c.JSON(http.StatusOK, gin.H{"audio": s.Audio()})
}

// Select audio track endpoint
func (api *API) selectAudioTrack(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		TrackID string `json:"track_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SelectTrack(req.TrackID)
	c.JSON(http.StatusOK, gin.H{"selected_track_id": req.TrackID})
}

// Set main volume endpoint. The stored volume updates even while muted;
// only the effective output stays silent.
func (api *API) setMainVolume(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Volume *float64 `json:"volume" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SetMainVolume(*req.Volume)
	audio := s.Audio()
	c.JSON(http.StatusOK, gin.H{
		"main_volume":      audio.MainVolume,
		"effective_volume": audio.EffectiveMainVolume(),
	})
}

// Set mute endpoint
func (api *API) setMute(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Muted *bool `json:"muted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.ToggleMute(*req.Muted)
	audio := s.Audio()
	c.JSON(http.StatusOK, gin.H{
		"is_muted":         audio.IsMuted,
		"effective_volume": audio.EffectiveMainVolume(),
	})
}
