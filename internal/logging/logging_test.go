package logging

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "JSON format to stdout",
			config: Config{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name: "Console format to stderr",
			config: Config{
				Level:  "debug",
				Format: "console",
				Output: "stderr",
			},
			wantErr: false,
		},
		{
			name: "Invalid log level defaults to info",
			config: Config{
				Level:  "invalid",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("Expected non-nil logger")
			}
		})
	}
}

func TestLoggerFieldHelpers(t *testing.T) {
	logger, err := NewDefaultLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if logger.WithSessionID("s1") == nil {
		t.Error("WithSessionID returned nil")
	}
	if logger.WithProjectID("p1") == nil {
		t.Error("WithProjectID returned nil")
	}
	if logger.WithField("key", "value") == nil {
		t.Error("WithField returned nil")
	}

	// Should not panic
	logger.LogCommand("s1", "timeline", "addClip")
	logger.LogRenderProgress("s1", 42)
}
