package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Create temporary config file
	content := `
server:
  port: 9090
  host: "127.0.0.1"

database:
  host: "testdb"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "testdb"

editor:
  renderStep: 4
`

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}

	if cfg.Database.Host != "testdb" {
		t.Errorf("Expected database host testdb, got %s", cfg.Database.Host)
	}

	if cfg.Editor.RenderStep != 4 {
		t.Errorf("Expected render step 4, got %d", cfg.Editor.RenderStep)
	}

	// Defaults survive partial files
	if cfg.Editor.UploadTickInterval != 150*time.Millisecond {
		t.Errorf("Expected default upload tick 150ms, got %v", cfg.Editor.UploadTickInterval)
	}

	if cfg.Editor.ThumbnailOffset != time.Second {
		t.Errorf("Expected default thumbnail offset 1s, got %v", cfg.Editor.ThumbnailOffset)
	}

	if cfg.Storage.PresignExpiry != 15*time.Minute {
		t.Errorf("Expected default presign expiry 15m, got %v", cfg.Storage.PresignExpiry)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Expected error when loading nonexistent file")
	}
}
