package models

// Resolution is the output frame size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProjectState is the project metadata plus the render/export lifecycle.
// Only the name, resolution and framerate setters dirty the project; the
// dirty flag is cleared solely by a durable save.
type ProjectState struct {
	Name           string     `json:"name"`
	IsDirty        bool       `json:"is_dirty"`
	IsRendering    bool       `json:"is_rendering"`
	RenderProgress int        `json:"render_progress"`
	IsExporting    bool       `json:"is_exporting"`
	ExportRef      string     `json:"export_ref"`
	Resolution     Resolution `json:"resolution"`
	Framerate      int        `json:"framerate"`
}

// NewProjectState returns the default metadata for a fresh project.
func NewProjectState() ProjectState {
	return ProjectState{
		Name:       "Untitled Project",
		Resolution: Resolution{Width: 1920, Height: 1080},
		Framerate:  30,
	}
}

// Busy reports whether a render or export pass is in flight.
func (p ProjectState) Busy() bool {
	return p.IsRendering || p.IsExporting
}

// VideoState is the session-local source video and transport state. It is
// never persisted: media refs do not survive a session reload.
type VideoState struct {
	VideoRef       string  `json:"video_ref"`
	ThumbnailRef   string  `json:"thumbnail_ref"`
	Duration       float64 `json:"duration"`
	CurrentTime    float64 `json:"current_time"`
	IsPlaying      bool    `json:"is_playing"`
	IsUploading    bool    `json:"is_uploading"`
	UploadProgress int     `json:"upload_progress"`
}
