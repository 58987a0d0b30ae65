package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Telemetry TelemetryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// TelemetryConfig holds span streaming configuration.
type TelemetryConfig struct {
	// ContainerID is the display container root spans append into.
	ContainerID string `envconfig:"CONTAINER_ID" default:"telemetry-container"`
	// Endpoint is the SSE path the stream is served on.
	Endpoint string `envconfig:"STREAM_ENDPOINT" default:"/telemetry"`
	// AutoExpand lists case-insensitive name substrings that render
	// initially expanded.
	AutoExpand []string `envconfig:"AUTO_EXPAND" default:"Tool:,Chat Message:"`
	// QueueDiscipline selects the delivery channel backing:
	// "unbounded" or "bounded".
	QueueDiscipline string `envconfig:"QUEUE_DISCIPLINE" default:"unbounded"`
	// QueueCapacity applies to the bounded discipline only.
	QueueCapacity int `envconfig:"QUEUE_CAPACITY" default:"8192"`
	// HeartbeatInterval bounds the consumer wait; on timeout a
	// keep-alive event is emitted instead of a patch.
	HeartbeatInterval time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"1s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Telemetry: TelemetryConfig{
			ContainerID:       "telemetry-container",
			Endpoint:          "/telemetry",
			AutoExpand:        []string{"Tool:", "Chat Message:"},
			QueueDiscipline:   "unbounded",
			QueueCapacity:     8192,
			HeartbeatInterval: time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
