package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ember_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Editor Metrics
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_editor_commands_total",
			Help: "Total number of state-mutating editor commands",
		},
		[]string{"slice"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ember_sessions_active",
			Help: "Number of editing sessions currently loaded",
		},
	)

	// Media Metrics
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"media_type", "status"},
	)

	MediaUploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ember_media_upload_size_bytes",
			Help:    "Size of uploaded media in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10), // 1KB to ~256MB
		},
	)

	// Render Metrics
	RendersStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ember_renders_started_total",
			Help: "Total number of render passes started",
		},
	)

	RendersCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_renders_completed_total",
			Help: "Total number of render passes finished",
		},
		[]string{"status"},
	)

	RendersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ember_renders_in_progress",
			Help: "Number of render passes currently in flight",
		},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ember_render_duration_seconds",
			Help:    "Render pass duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// Persistence Metrics
	SnapshotWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_snapshot_writes_total",
			Help: "Total number of session snapshot writes",
		},
		[]string{"status"},
	)

	ProjectSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_project_saves_total",
			Help: "Total number of durable project saves",
		},
		[]string{"status"},
	)

	// Storage Metrics
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_storage_operations_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ember_storage_operation_duration_seconds",
			Help:    "Object storage operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"operation"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCommand records a state-mutating editor command
func RecordCommand(slice string) {
	CommandsTotal.WithLabelValues(slice).Inc()
}

// RecordMediaUpload records a media upload attempt
func RecordMediaUpload(mediaType, status string, sizeBytes int64) {
	MediaUploadsTotal.WithLabelValues(mediaType, status).Inc()
	if sizeBytes > 0 {
		MediaUploadSizeBytes.Observe(float64(sizeBytes))
	}
}

// RecordRenderStarted records the start of a render pass
func RecordRenderStarted() {
	RendersStartedTotal.Inc()
	RendersInProgress.Inc()
}

// RecordRenderCompleted records the end of a render pass
func RecordRenderCompleted(status string, duration float64) {
	RendersCompletedTotal.WithLabelValues(status).Inc()
	RendersInProgress.Dec()
	if duration > 0 {
		RenderDuration.Observe(duration)
	}
}

// RecordSnapshotWrite records a session snapshot write
func RecordSnapshotWrite(status string) {
	SnapshotWritesTotal.WithLabelValues(status).Inc()
}

// RecordProjectSave records a durable project save
func RecordProjectSave(status string) {
	ProjectSavesTotal.WithLabelValues(status).Inc()
}

// RecordStorageOperation records an object storage operation
func RecordStorageOperation(operation, status string, duration float64) {
	StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	StorageOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
