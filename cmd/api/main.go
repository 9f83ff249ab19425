package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberstudio/ember/internal/config"
	"github.com/emberstudio/ember/internal/database"
	"github.com/emberstudio/ember/internal/editor"
	"github.com/emberstudio/ember/internal/ingest"
	"github.com/emberstudio/ember/internal/logging"
	"github.com/emberstudio/ember/internal/notify"
	"github.com/emberstudio/ember/internal/render"
	"github.com/emberstudio/ember/internal/storage"
	"github.com/emberstudio/ember/internal/store"
	"github.com/emberstudio/ember/internal/tracing"
	"github.com/emberstudio/ember/pkg/models"
)

// ProjectLibrary is the durable saved-project surface the API needs.
type ProjectLibrary interface {
	CreateProject(ctx context.Context, project *models.SavedProject) error
	GetProject(ctx context.Context, id string) (*models.SavedProject, error)
	UpdateProject(ctx context.Context, project *models.SavedProject) error
	ListProjects(ctx context.Context, limit, offset int) ([]*models.SavedProject, error)
	DeleteProject(ctx context.Context, id string) error
	Health(ctx context.Context) error
}

// AssetStore is the read side of object storage the API serves directly:
// listing a session's stored media, streaming an object back and minting
// time-limited links.
type AssetStore interface {
	Get(ctx context.Context, objectName string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	GetURL(ctx context.Context, objectName string) (string, error)
}

type API struct {
	cfg      *config.Config
	logger   *logging.Logger
	sessions *editor.Manager
	library  ProjectLibrary
	ingestor *ingest.Ingestor
	renders  *render.Manager
	notifier notify.Notifier
	assets   AssetStore
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewDefaultLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Tracing is optional; when disabled the noop global tracer stays in
	// place.
	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer closer.Close()
	}

	// Durable project library
	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	// Live snapshot store
	snapshots, err := store.New(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to snapshot store: %v", err)
	}
	defer snapshots.Close()

	// Media asset storage
	blobs, err := storage.New(cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Notification sink
	var notifier notify.Notifier
	if cfg.Events.Enabled {
		notifier, err = notify.NewAMQPNotifier(cfg.Events, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to event broker: %v", err)
		}
	} else {
		notifier = notify.NewLogNotifier(logger)
	}
	defer notifier.Close()

	sessions := editor.NewManager(snapshots, logger)
	ingestor := ingest.New(cfg.Editor, blobs, logger, notifier)
	renders := render.NewManager(cfg.Editor, logger, notifier)

	api := &API{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		library:  repo,
		ingestor: ingestor,
		renders:  renders,
		notifier: notifier,
		assets:   blobs,
	}

	router := setupRouter(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// In-flight simulated work does not survive a restart; stop it before
	// the listener drains.
	renders.CancelAll()
	ingestor.CancelAll()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
