package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emberstudio/ember/internal/config"
)

func TestPresignExpiryFollowsConfig(t *testing.T) {
	assert.Equal(t, time.Hour, presignExpiryFor(config.StorageConfig{PresignExpiry: time.Hour}))

	// Unset or nonsense values fall back to the default window.
	assert.Equal(t, defaultPresignExpiry, presignExpiryFor(config.StorageConfig{}))
	assert.Equal(t, defaultPresignExpiry, presignExpiryFor(config.StorageConfig{PresignExpiry: -time.Minute}))
}

func TestContentType(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"intro.mp4", "video/mp4"},
		{"clip.webm", "video/webm"},
		{"beat.mp3", "audio/mpeg"},
		{"voice.wav", "audio/wav"},
		{"logo.png", "image/png"},
		{"photo.jpeg", "image/jpeg"},
		{"unknown.bin", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.fileName))
		})
	}
}
