package editor

// Video/transport commands. The video slice is session-local and excluded
// from snapshots, so these commands do not emit persistence changes.

// SetPlayhead moves the playhead to t seconds.
func (s *Session) SetPlayhead(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t < 0 {
		t = 0
	}
	s.video.CurrentTime = t
}

// SetPlaying toggles playback.
func (s *Session) SetPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video.IsPlaying = playing
}

// Rewind seeks back to the start.
func (s *Session) Rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video.CurrentTime = 0
}

// BeginUpload marks a simulated upload as in flight.
func (s *Session) BeginUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.video.IsUploading = true
	s.video.UploadProgress = 0
}

// AdvanceUpload increments upload progress by step, atomically with the
// completion check.
func (s *Session) AdvanceUpload(step int) (progress int, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.video.IsUploading {
		return s.video.UploadProgress, false
	}
	s.video.UploadProgress += step
	if s.video.UploadProgress >= 100 {
		s.video.UploadProgress = 100
		done = true
	}
	return s.video.UploadProgress, done
}

// CompleteUpload installs the loaded source video.
func (s *Session) CompleteUpload(sourceRef, thumbnailRef string, duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.video.IsUploading = false
	s.video.UploadProgress = 100
	s.video.VideoRef = sourceRef
	s.video.ThumbnailRef = thumbnailRef
	s.video.Duration = duration
}

// CancelUpload resets the in-flight upload state.
func (s *Session) CancelUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.video.IsUploading = false
	s.video.UploadProgress = 0
}

// FailUpload rolls the video slice back to its pre-attempt state after a
// media load failure: the ref and all dependent fields are reset.
func (s *Session) FailUpload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.video.IsUploading = false
	s.video.UploadProgress = 0
	s.video.VideoRef = ""
	s.video.ThumbnailRef = ""
	s.video.Duration = 0
	s.video.CurrentTime = 0
	s.video.IsPlaying = false
}
