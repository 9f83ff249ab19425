package editor

import (
	"errors"

	"github.com/emberstudio/ember/pkg/models"
)

// ErrRenderInProgress is returned when a render is requested while a render
// or export pass is already in flight.
var ErrRenderInProgress = errors.New("render already in progress")

// SetProjectName renames the project. Name, resolution and framerate are
// the only three setters that dirty the project.
func (s *Session) SetProjectName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.Name = name
	s.commit(Change{Slice: SliceProject, DirtiesProject: true})
}

// SetResolution changes the output resolution and dirties the project.
func (s *Session) SetResolution(res models.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.Resolution = res
	s.commit(Change{Slice: SliceProject, DirtiesProject: true})
}

// SetFramerate changes the output framerate and dirties the project.
func (s *Session) SetFramerate(fps int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.Framerate = fps
	s.commit(Change{Slice: SliceProject, DirtiesProject: true})
}

// MarkSaved clears the dirty flag after a successful durable save. Nothing
// else clears it.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.IsDirty = false
	s.commit(Change{Slice: SliceProject})
}

// BeginRender moves the project from idle into the rendering phase.
// Invocations while already rendering or exporting are rejected.
func (s *Session) BeginRender() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.project.Busy() {
		return ErrRenderInProgress
	}
	s.project.IsRendering = true
	s.project.RenderProgress = 0
	s.commit(Change{Slice: SliceProject})
	return nil
}

// AdvanceRender increments render progress by step within a single atomic
// command. Progress lands on exactly 100 before done is reported, however
// the step divides.
func (s *Session) AdvanceRender(step int) (progress int, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.project.IsRendering {
		return s.project.RenderProgress, false
	}
	s.project.RenderProgress += step
	if s.project.RenderProgress >= 100 {
		s.project.RenderProgress = 100
		done = true
	}
	s.commit(Change{Slice: SliceProject})
	return s.project.RenderProgress, done
}

// BeginExport transitions rendering -> exporting.
func (s *Session) BeginExport() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.IsRendering = false
	s.project.IsExporting = true
	s.commit(Change{Slice: SliceProject})
}

// CompleteExport finishes the export phase and records the export ref.
func (s *Session) CompleteExport(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.IsExporting = false
	s.project.ExportRef = ref
	s.commit(Change{Slice: SliceProject})
}

// CancelRender resets the render/export lifecycle back to idle.
func (s *Session) CancelRender() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project.IsRendering = false
	s.project.IsExporting = false
	s.project.RenderProgress = 0
	s.commit(Change{Slice: SliceProject})
}
