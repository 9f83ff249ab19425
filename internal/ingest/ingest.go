// Package ingest runs the media upload flows: video sources, audio tracks
// and overlay images. Assets land in object storage first; the video flow
// then runs the simulated upload progression and finishes by installing
// the source on the session and placing a full-length clip on the
// timeline, so every loaded video is timeline-addressable.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/editor"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/internal/metrics"
	"github.com/emberstudio/ember/internal/notify"
	"github.com/emberstudio/ember/internal/progress"
	"github.com/emberstudio/ember/pkg/models"
)

var (
	// ErrInvalidFileType is returned when the content type does not match
	// the requested media kind. The session is left untouched.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrMediaLoadFailure is reported when an uploaded source turns out to
	// be unreadable. The video slice is rolled back.
	ErrMediaLoadFailure = errors.New("media failed to load")

	// ErrUploadInProgress is returned when a video upload is requested
	// while one is already in flight for the session.
	ErrUploadInProgress = errors.New("upload already in progress")
)

// BlobStore is the object storage surface the ingest flows need.
type BlobStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, objectName string) error
	StillURL(ctx context.Context, objectName string, offset time.Duration) (string, error)
}

// VideoUpload describes an incoming video source.
type VideoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Duration    float64
	Reader      io.Reader
}

// AudioUpload describes an incoming audio file.
type AudioUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Duration    float64
	Reader      io.Reader
}

// ImageUpload describes an incoming overlay image. NaturalWidth and
// NaturalHeight are the source pixel dimensions; the placed overlay is
// scaled to a fixed display width preserving aspect.
type ImageUpload struct {
	FileName      string
	ContentType   string
	Size          int64
	NaturalWidth  float64
	NaturalHeight float64
	Reader        io.Reader
}

// ImageOverlayWidth is the display width of a newly placed image overlay.
const ImageOverlayWidth = 200.0

// Ingestor runs media uploads. At most one video upload per session is in
// flight at a time; audio and image uploads are synchronous.
type Ingestor struct {
	cfg      config.EditorConfig
	blobs    BlobStore
	logger   *logging.Logger
	notifier notify.Notifier

	mu      sync.Mutex
	uploads map[string]*upload
}

// upload tracks one in-flight video upload. The map entry is reserved
// before the asset is stored; task and objectRef are written under
// Ingestor.mu once the store completes.
type upload struct {
	task      *progress.Task
	objectRef string
}

// New creates an ingestor.
func New(cfg config.EditorConfig, blobs BlobStore, logger *logging.Logger, notifier notify.Notifier) *Ingestor {
	return &Ingestor{
		cfg:      cfg,
		blobs:    blobs,
		logger:   logger,
		notifier: notifier,
		uploads:  make(map[string]*upload),
	}
}

// UploadVideo stores the source and starts the simulated upload
// progression. On completion the source is installed on the session, a
// clip spanning the full source is appended to the timeline and a
// notification is raised. A source that reports a non-positive duration is
// treated as a media load failure: the slice is rolled back and the stored
// asset removed.
func (i *Ingestor) UploadVideo(ctx context.Context, s *editor.Session, up VideoUpload) error {
	if !strings.HasPrefix(up.ContentType, "video/") {
		metrics.RecordMediaUpload("video", "rejected", 0)
		return ErrInvalidFileType
	}

	// Reserve the session's upload slot before any storage I/O. The
	// reservation is the single-flight guard: a concurrent request finds
	// the entry and is rejected without racing the store call.
	u := &upload{}
	i.mu.Lock()
	if _, inFlight := i.uploads[s.ID]; inFlight {
		i.mu.Unlock()
		return ErrUploadInProgress
	}
	i.uploads[s.ID] = u
	i.mu.Unlock()

	ref := i.objectRef(s.ID, "video", up.FileName)
	if err := i.blobs.Put(ctx, ref, up.Reader, up.Size, up.ContentType); err != nil {
		i.release(s.ID, u)
		metrics.RecordMediaUpload("video", "failed", up.Size)
		return fmt.Errorf("failed to store video: %w", err)
	}

	i.mu.Lock()
	if i.uploads[s.ID] != u {
		// Canceled while the asset was being stored.
		i.mu.Unlock()
		if err := i.blobs.Delete(ctx, ref); err != nil {
			i.logger.WithError(err).WithSessionID(s.ID).Error("Failed to remove canceled upload")
		}
		metrics.RecordMediaUpload("video", "canceled", 0)
		return nil
	}

	s.BeginUpload()
	u.objectRef = ref
	u.task = progress.Start(i.cfg.UploadTickInterval, func() bool {
		_, done := s.AdvanceUpload(i.cfg.UploadStep)
		return done
	}, 0, func() {
		i.finishVideo(s, up, ref, u)
	})
	i.mu.Unlock()

	i.logger.WithSessionID(s.ID).WithField("object", ref).Info("Video upload started")
	return nil
}

// release drops a reservation if it is still the current one. Reports
// whether this caller owned the entry.
func (i *Ingestor) release(sessionID string, u *upload) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.uploads[sessionID] != u {
		return false
	}
	delete(i.uploads, sessionID)
	return true
}

func (i *Ingestor) finishVideo(s *editor.Session, up VideoUpload, ref string, u *upload) {
	ctx := context.Background()

	// A cancel that already claimed the entry wins; the asset is gone.
	if !i.release(s.ID, u) {
		return
	}

	if up.Duration <= 0 {
		s.FailUpload()
		if err := i.blobs.Delete(ctx, ref); err != nil {
			i.logger.WithError(err).WithSessionID(s.ID).Error("Failed to remove unreadable video")
		}
		metrics.RecordMediaUpload("video", "failed", up.Size)
		i.notifier.Notify(ctx, models.Notification{
			Title:       "Upload failed",
			Description: ErrMediaLoadFailure.Error(),
			Severity:    models.SeverityError,
			SessionID:   s.ID,
			Timestamp:   time.Now(),
		})
		return
	}

	thumbRef, err := i.blobs.StillURL(ctx, ref, i.cfg.ThumbnailOffset)
	if err != nil {
		i.logger.WithError(err).WithSessionID(s.ID).Error("Failed to derive thumbnail URL")
		thumbRef = ""
	}

	s.CompleteUpload(ref, thumbRef, up.Duration)
	s.AddClip(models.Clip{
		ID:            uuid.New().String(),
		Kind:          models.ClipKindVideo,
		TimelineStart: 0,
		TimelineEnd:   up.Duration,
		SourceStart:   0,
		SourceEnd:     up.Duration,
		SourceRef:     ref,
		DisplayName:   up.FileName,
	})

	metrics.RecordMediaUpload("video", "completed", up.Size)
	i.logger.WithSessionID(s.ID).WithField("object", ref).Info("Video upload complete")
	i.notifier.Notify(ctx, models.Notification{
		Title:       "Upload complete",
		Description: up.FileName + " is ready to edit.",
		Severity:    models.SeverityInfo,
		SessionID:   s.ID,
		Timestamp:   time.Now(),
	})
}

// CancelVideo stops an in-flight video upload, resets the session's upload
// state and removes the stored asset. Canceling a session with no upload
// is a no-op.
func (i *Ingestor) CancelVideo(ctx context.Context, s *editor.Session) {
	i.mu.Lock()
	u, ok := i.uploads[s.ID]
	if ok {
		delete(i.uploads, s.ID)
	}
	i.mu.Unlock()

	if !ok {
		return
	}

	if u.task != nil {
		u.task.Cancel()
	}
	s.CancelUpload()

	// An empty ref means the store call had not finished; the upload
	// goroutine notices the lost reservation and removes the asset itself.
	if u.objectRef != "" {
		if err := i.blobs.Delete(ctx, u.objectRef); err != nil {
			i.logger.WithError(err).WithSessionID(s.ID).Error("Failed to remove canceled upload")
		}
	}
	metrics.RecordMediaUpload("video", "canceled", 0)
	i.logger.WithSessionID(s.ID).Info("Video upload canceled")
}

// UploadAudio stores an audio file and adds it to the mix with default
// settings.
func (i *Ingestor) UploadAudio(ctx context.Context, s *editor.Session, up AudioUpload) (models.AudioTrack, error) {
	if !strings.HasPrefix(up.ContentType, "audio/") {
		metrics.RecordMediaUpload("audio", "rejected", 0)
		return models.AudioTrack{}, ErrInvalidFileType
	}

	ref := i.objectRef(s.ID, "audio", up.FileName)
	if err := i.blobs.Put(ctx, ref, up.Reader, up.Size, up.ContentType); err != nil {
		metrics.RecordMediaUpload("audio", "failed", up.Size)
		return models.AudioTrack{}, fmt.Errorf("failed to store audio: %w", err)
	}

	track := s.AddTrack(up.FileName, ref, up.Duration)
	metrics.RecordMediaUpload("audio", "completed", up.Size)
	i.logger.WithSessionID(s.ID).WithField("object", ref).Info("Audio track added")
	return track, nil
}

// UploadImage stores an overlay image and places it at the playhead,
// scaled to the fixed display width with aspect preserved.
func (i *Ingestor) UploadImage(ctx context.Context, s *editor.Session, up ImageUpload) (models.ImageOverlay, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		metrics.RecordMediaUpload("image", "rejected", 0)
		return models.ImageOverlay{}, ErrInvalidFileType
	}

	ref := i.objectRef(s.ID, "image", up.FileName)
	if err := i.blobs.Put(ctx, ref, up.Reader, up.Size, up.ContentType); err != nil {
		metrics.RecordMediaUpload("image", "failed", up.Size)
		return models.ImageOverlay{}, fmt.Errorf("failed to store image: %w", err)
	}

	size := models.Size{Width: ImageOverlayWidth, Height: ImageOverlayWidth}
	if up.NaturalWidth > 0 && up.NaturalHeight > 0 {
		size.Height = ImageOverlayWidth * up.NaturalHeight / up.NaturalWidth
	}

	overlay := s.AddImageOverlayAt(ref, size)
	metrics.RecordMediaUpload("image", "completed", up.Size)
	i.logger.WithSessionID(s.ID).WithField("object", ref).Info("Image overlay added")
	return overlay, nil
}

// CancelAll cancels every in-flight upload. Used during shutdown.
func (i *Ingestor) CancelAll() {
	i.mu.Lock()
	uploads := i.uploads
	i.uploads = make(map[string]*upload)
	i.mu.Unlock()

	for _, u := range uploads {
		if u.task != nil {
			u.task.Cancel()
		}
	}
}

func (i *Ingestor) objectRef(sessionID, kind, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("sessions/%s/%s/%s%s", sessionID, kind, uuid.New().String(), ext)
}
