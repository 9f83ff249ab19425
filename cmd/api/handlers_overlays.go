package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/pkg/models"
)

// Add text overlay endpoint. The overlay is placed at the current playhead
// with the default style and visibility window.
func (api *API) addTextOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overlay := s.AddTextOverlayAt(req.Text)
	c.JSON(http.StatusCreated, overlay)
}

// Update text overlay endpoint
func (api *API) updateTextOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var patch models.TextOverlayPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.UpdateTextOverlay(c.Param("overlayID"), patch)
	c.JSON(http.StatusOK, gin.H{"overlays": s.Overlays()})
}

// Remove text overlay endpoint
func (api *API) removeTextOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	s.RemoveTextOverlay(c.Param("overlayID"))
	c.JSON(http.StatusOK, gin.H{"overlays": s.Overlays()})
}

// Update image overlay endpoint
func (api *API) updateImageOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var patch models.ImageOverlayPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.UpdateImageOverlay(c.Param("overlayID"), patch)
	c.JSON(http.StatusOK, gin.H{"overlays": s.Overlays()})
}

// Remove image overlay endpoint
func (api *API) removeImageOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	s.RemoveImageOverlay(c.Param("overlayID"))
	c.JSON(http.StatusOK, gin.H{"overlays": s.Overlays()})
}

// Select overlay endpoint. The selection is a tagged pair: kind plus id,
// replaced atomically. An empty body clears the selection.
func (api *API) selectOverlay(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var sel models.OverlaySelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if sel.Kind != models.OverlayKindNone &&
		sel.Kind != models.OverlayKindText &&
		sel.Kind != models.OverlayKindImage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown overlay kind"})
		return
	}

	s.SelectOverlay(sel)
	c.JSON(http.StatusOK, gin.H{"selection": s.Overlays().Selection})
}
