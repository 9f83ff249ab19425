package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Events   EventsConfig
	Editor   EditorConfig
	Tracing  TracingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	PresignExpiry   time.Duration
}

// EventsConfig holds message broker configuration for the notification sink
type EventsConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Vhost    string
}

// EditorConfig holds the simulated-work timings and media policy. The
// values mirror the editor's behavioral contract: upload advances 5% per
// tick, render 2% per tick, a short pause separates rendering from
// exporting, and thumbnails sample the source at a fixed 1s offset.
type EditorConfig struct {
	UploadTickInterval  time.Duration
	UploadStep          int
	RenderTickInterval  time.Duration
	RenderStep          int
	RenderFinalizePause time.Duration
	ExportDuration      time.Duration
	ThumbnailOffset     time.Duration
}

// TracingConfig holds Jaeger tracing configuration
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	JaegerEndpoint string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.readTimeout", "30s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "emberstudio")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxConns", 25)
	viper.SetDefault("database.minConns", 5)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Storage defaults
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accessKeyID", "minioadmin")
	viper.SetDefault("storage.secretAccessKey", "minioadmin")
	viper.SetDefault("storage.bucketName", "ember-media")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", false)
	viper.SetDefault("storage.presignExpiry", "15m")

	// Events defaults
	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.host", "localhost")
	viper.SetDefault("events.port", 5672)
	viper.SetDefault("events.user", "guest")
	viper.SetDefault("events.password", "guest")
	viper.SetDefault("events.vhost", "/")

	// Editor defaults
	viper.SetDefault("editor.uploadTickInterval", "150ms")
	viper.SetDefault("editor.uploadStep", 5)
	viper.SetDefault("editor.renderTickInterval", "200ms")
	viper.SetDefault("editor.renderStep", 2)
	viper.SetDefault("editor.renderFinalizePause", "500ms")
	viper.SetDefault("editor.exportDuration", "1500ms")
	viper.SetDefault("editor.thumbnailOffset", "1s")

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.serviceName", "ember-studio")
	viper.SetDefault("tracing.jaegerEndpoint", "http://localhost:14268/api/traces")
}
