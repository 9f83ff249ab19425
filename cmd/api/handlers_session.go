package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/internal/editor"
)

// loadSession resolves the session named in the path, writing the error
// response itself when the session cannot be found.
func (api *API) loadSession(c *gin.Context) (*editor.Session, bool) {
	id := c.Param("id")

	s, err := api.sessions.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, editor.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return s, true
}

// sessionView is the full session state returned by session reads.
func sessionView(s *editor.Session) gin.H {
	return gin.H{
		"id":       s.ID,
		"timeline": s.Timeline(),
		"overlays": s.Overlays(),
		"audio":    s.Audio(),
		"project":  s.Project(),
		"video":    s.Video(),
	}
}

// Create session endpoint
func (api *API) createSession(c *gin.Context) {
	s := api.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, sessionView(s))
}

// List sessions endpoint
func (api *API) listSessions(c *gin.Context) {
	ids, err := api.sessions.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": ids})
}

// Get session endpoint
func (api *API) getSession(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sessionView(s))
}

// Delete session endpoint
func (api *API) deleteSession(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	// Stop any simulated work before the session goes away.
	api.renders.Cancel(s)
	api.ingestor.CancelVideo(c.Request.Context(), s)

	if err := api.sessions.Delete(c.Request.Context(), s.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted", "session_id": s.ID})
}
