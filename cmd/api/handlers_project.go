package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emberstudio/ember/internal/database"
	"github.com/emberstudio/ember/internal/editor"
	"github.com/emberstudio/ember/internal/metrics"
	"github.com/emberstudio/ember/internal/render"
	"github.com/emberstudio/ember/pkg/models"
)

// Update project metadata endpoint. Name, resolution and framerate are the
// only fields writable here, and each one dirties the project.
func (api *API) updateProject(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		Name       *string            `json:"name"`
		Resolution *models.Resolution `json:"resolution"`
		Framerate  *int               `json:"framerate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		s.SetProjectName(*req.Name)
	}
	if req.Resolution != nil {
		s.SetResolution(*req.Resolution)
	}
	if req.Framerate != nil {
		s.SetFramerate(*req.Framerate)
	}

	c.JSON(http.StatusOK, gin.H{"project": s.Project()})
}

// Start render endpoint
func (api *API) startRender(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var opts render.Options
	if err := c.ShouldBindJSON(&opts); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.renders.Start(s, opts); err != nil {
		if errors.Is(err, editor.ErrRenderInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"project": s.Project()})
}

// Render status endpoint
func (api *API) renderStatus(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	p := s.Project()
	c.JSON(http.StatusOK, gin.H{
		"is_rendering":    p.IsRendering,
		"render_progress": p.RenderProgress,
		"is_exporting":    p.IsExporting,
		"export_ref":      p.ExportRef,
	})
}

// Cancel render endpoint
func (api *API) cancelRender(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	api.renders.Cancel(s)
	c.JSON(http.StatusOK, gin.H{"project": s.Project()})
}

// Save project endpoint: writes the session snapshot into the durable
// library and clears the dirty flag.
func (api *API) saveProject(c *gin.Context) {
	s, ok := api.loadSession(c)
	if !ok {
		return
	}

	var req struct {
		ProjectID string `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := s.Snapshot()
	saved := &models.SavedProject{
		ID:       req.ProjectID,
		Name:     snap.Project.Name,
		Snapshot: snap,
	}

	var err error
	if saved.ID == "" {
		err = api.library.CreateProject(c.Request.Context(), saved)
	} else {
		err = api.library.UpdateProject(c.Request.Context(), saved)
		if errors.Is(err, database.ErrProjectNotFound) {
			err = api.library.CreateProject(c.Request.Context(), saved)
		}
	}
	if err != nil {
		metrics.RecordProjectSave("failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.MarkSaved()
	metrics.RecordProjectSave("ok")
	api.logger.WithSessionID(s.ID).WithProjectID(saved.ID).Info("Project saved")

	c.JSON(http.StatusOK, gin.H{
		"project_id": saved.ID,
		"name":       saved.Name,
		"updated_at": saved.UpdatedAt,
	})
}

// List saved projects endpoint
func (api *API) listProjects(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	projects, err := api.library.ListProjects(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

// Get saved project endpoint
func (api *API) getProject(c *gin.Context) {
	project, err := api.library.GetProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete saved project endpoint
func (api *API) deleteProject(c *gin.Context) {
	id := c.Param("projectID")

	if err := api.library.DeleteProject(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted", "project_id": id})
}

// Open saved project endpoint: starts a fresh session seeded from the
// saved snapshot. The new session begins with no loaded video.
func (api *API) openProject(c *gin.Context) {
	project, err := api.library.GetProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s, err := api.sessions.Open(c.Request.Context(), project.Snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sessionView(s))
}
