package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emberstudio/ember/internal/derive"
	"github.com/emberstudio/ember/pkg/models"
)

// Add clip endpoint
func (api *API) addClip(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var clip models.Clip
	if err := c.ShouldBindJSON(&clip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if clip.ID == "" {
		clip.ID = uuid.New().String()
	}
	if clip.Kind == "" {
		clip.Kind = models.ClipKindVideo
	}

	s.AddClip(clip)
	c.JSON(http.StatusCreated, clip)
}

// Update clip endpoint
func (api *API) updateClip(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var patch models.ClipPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Unknown ids are silent no-ops in the model; the API mirrors that.
	s.UpdateClip(c.Param("clipID"), patch)
	c.JSON(http.StatusOK, gin.H{"timeline": s.Timeline()})
}

// Remove clip endpoint
func (api *API) removeClip(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	s.RemoveClip(c.Param("clipID"))
	c.JSON(http.StatusOK, gin.H{"timeline": s.Timeline()})
}

// Reorder clips endpoint
func (api *API) reorderClips(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Clips []models.Clip `json:"clips" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.ReorderClips(req.Clips)
	c.JSON(http.StatusOK, gin.H{"timeline": s.Timeline()})
}

// Select clip endpoint
func (api *API) selectClip(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		ClipID string `json:"clip_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.SelectClip(req.ClipID)
	c.JSON(http.StatusOK, gin.H{"selected_clip_id": req.ClipID})
}

// Set zoom endpoint
func (api *API) setZoom(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Zoom *float64 `json:"zoom"`
		Step string   `json:"step"` // "in" or "out" for button steps
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var zoom float64
	switch {
	case req.Step == "in":
		zoom = s.ZoomIn()
	case req.Step == "out":
		zoom = s.ZoomOut()
	case req.Zoom != nil:
		zoom = s.SetZoom(*req.Zoom)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "zoom or step required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"zoom": zoom})
}

// Timeline layout endpoint: per-clip geometry plus ruler marks at the
// current zoom.
func (api *API) timelineLayout(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	tl := s.Timeline()
	duration := s.Video().Duration

	boxes := make(map[string]derive.ClipBox, len(tl.Clips))
	for _, clip := range tl.Clips {
		boxes[clip.ID] = derive.ClipGeometry(clip, duration, tl.Zoom)
	}

	c.JSON(http.StatusOK, gin.H{
		"zoom":        tl.Zoom,
		"duration":    duration,
		"clip_boxes":  boxes,
		"ruler_marks": derive.RulerMarks(duration, 10),
	})
}
