package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberstudio/ember/internal/middleware"
)

func setupRouter(api *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.logger))

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Sessions
		v1.POST("/sessions", api.createSession)
		v1.GET("/sessions", api.listSessions)
		v1.GET("/sessions/:id", api.getSession)
		v1.DELETE("/sessions/:id", api.deleteSession)

		// Timeline
		v1.POST("/sessions/:id/clips", api.addClip)
		v1.PATCH("/sessions/:id/clips/:clipID", api.updateClip)
		v1.DELETE("/sessions/:id/clips/:clipID", api.removeClip)
		v1.PUT("/sessions/:id/clips", api.reorderClips)
		v1.PUT("/sessions/:id/clips/selection", api.selectClip)
		v1.PUT("/sessions/:id/zoom", api.setZoom)
		v1.GET("/sessions/:id/timeline/layout", api.timelineLayout)

		// Overlays
		v1.POST("/sessions/:id/overlays/text", api.addTextOverlay)
		v1.PATCH("/sessions/:id/overlays/text/:overlayID", api.updateTextOverlay)
		v1.DELETE("/sessions/:id/overlays/text/:overlayID", api.removeTextOverlay)
		v1.PATCH("/sessions/:id/overlays/image/:overlayID", api.updateImageOverlay)
		v1.DELETE("/sessions/:id/overlays/image/:overlayID", api.removeImageOverlay)
		v1.PUT("/sessions/:id/overlays/selection", api.selectOverlay)

		// Audio mix
		v1.PATCH("/sessions/:id/audio/tracks/:trackID", api.updateAudioTrack)
		v1.DELETE("/sessions/:id/audio/tracks/:trackID", api.removeAudioTrack)
		v1.PUT("/sessions/:id/audio/selection", api.selectAudioTrack)
		v1.PUT("/sessions/:id/audio/volume", api.setMainVolume)
		v1.PUT("/sessions/:id/audio/mute", api.setMute)

		// Project metadata
		v1.PUT("/sessions/:id/project", api.updateProject)

		// Playback
		v1.PUT("/sessions/:id/playhead", api.setPlayhead)
		v1.PUT("/sessions/:id/playback", api.setPlayback)
		v1.POST("/sessions/:id/rewind", api.rewind)
		v1.GET("/sessions/:id/preview", api.preview)

		// Media
		v1.GET("/sessions/:id/media", api.listMedia)
		v1.GET("/sessions/:id/media/download", api.downloadMedia)
		v1.GET("/sessions/:id/media/url", api.mediaURL)
		v1.POST("/sessions/:id/media/video", api.uploadVideo)
		v1.GET("/sessions/:id/media/video/progress", api.uploadProgress)
		v1.DELETE("/sessions/:id/media/video", api.cancelUpload)
		v1.POST("/sessions/:id/media/audio", api.uploadAudio)
		v1.POST("/sessions/:id/media/image", api.uploadImage)

		// Render and export
		v1.POST("/sessions/:id/render", api.startRender)
		v1.GET("/sessions/:id/render", api.renderStatus)
		v1.DELETE("/sessions/:id/render", api.cancelRender)

		// Saved project library
		v1.POST("/sessions/:id/save", api.saveProject)
		v1.GET("/projects", api.listProjects)
		v1.GET("/projects/:projectID", api.getProject)
		v1.DELETE("/projects/:projectID", api.deleteProject)
		v1.POST("/projects/:projectID/open", api.openProject)
	}

	return router
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.library.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
