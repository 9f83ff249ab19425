package main

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/internal/ingest"
	"github.com/emberstudio/ember/internal/storage"
)

// formFloat reads a float form field, defaulting when absent.
func formFloat(c *gin.Context, name string, def float64) float64 {
	raw := c.PostForm(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// partContentType reads the multipart part's declared type, falling back
// to the extension-derived one when the client sent none.
func partContentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return storage.ContentType(file.Filename)
}

// sessionPrefix is the object key namespace for a session's media.
func sessionPrefix(sessionID string) string {
	return fmt.Sprintf("sessions/%s/", sessionID)
}

// Upload video endpoint. The file lands in object storage and the
// simulated upload progression begins; completion installs the source and
// a full-length timeline clip.
func (api *API) uploadVideo(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No video file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	err = api.ingestor.UploadVideo(c.Request.Context(), s, ingest.VideoUpload{
		FileName:    file.Filename,
		ContentType: partContentType(file),
		Size:        file.Size,
		Duration:    formFloat(c, "duration", 0),
		Reader:      src,
	})
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrInvalidFileType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, ingest.ErrUploadInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"video": s.Video()})
}

// Upload progress endpoint
func (api *API) uploadProgress(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	v := s.Video()
	c.JSON(http.StatusOK, gin.H{
		"is_uploading":    v.IsUploading,
		"upload_progress": v.UploadProgress,
		"video_ref":       v.VideoRef,
		"duration":        v.Duration,
	})
}

// Cancel upload endpoint
func (api *API) cancelUpload(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	api.ingestor.CancelVideo(c.Request.Context(), s)
	c.JSON(http.StatusOK, gin.H{"video": s.Video()})
}

// Upload audio endpoint. The track joins the mix immediately with default
// settings.
func (api *API) uploadAudio(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	track, err := api.ingestor.UploadAudio(c.Request.Context(), s, ingest.AudioUpload{
		FileName:    file.Filename,
		ContentType: partContentType(file),
		Size:        file.Size,
		Duration:    formFloat(c, "duration", 0),
		Reader:      src,
	})
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidFileType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, track)
}

// Upload image endpoint. The overlay appears at the playhead scaled to the
// standard display width.
func (api *API) uploadImage(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	overlay, err := api.ingestor.UploadImage(c.Request.Context(), s, ingest.ImageUpload{
		FileName:      file.Filename,
		ContentType:   partContentType(file),
		Size:          file.Size,
		NaturalWidth:  formFloat(c, "width", 0),
		NaturalHeight: formFloat(c, "height", 0),
		Reader:        src,
	})
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidFileType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, overlay)
}

// List media endpoint. Returns every object stored for the session.
func (api *API) listMedia(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	objects, err := api.assets.List(c.Request.Context(), sessionPrefix(s.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"objects": objects})
}

// Download media endpoint. Streams a stored asset back to the client.
// Only objects under the session's own namespace are served.
func (api *API) downloadMedia(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	object := c.Query("object")
	if !strings.HasPrefix(object, sessionPrefix(s.ID)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown object"})
		return
	}

	rc, err := api.assets.Get(c.Request.Context(), object)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", storage.ContentType(object))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		api.logger.WithError(err).WithSessionID(s.ID).Error("Failed to stream media object")
	}
}

// Media URL endpoint. Returns a time-limited link for direct playback.
func (api *API) mediaURL(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	object := c.Query("object")
	if !strings.HasPrefix(object, sessionPrefix(s.ID)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown object"})
		return
	}

	url, err := api.assets.GetURL(c.Request.Context(), object)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
