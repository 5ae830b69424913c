package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Assistant AssistantConfig
	Storage   StorageConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" toml:"port" default:"8000"`
	Host string `envconfig:"HOST" toml:"host" default:"0.0.0.0"`
}

// AssistantConfig holds remote interpreter configuration. An empty URL
// disables the remote strategy so only local rules run.
type AssistantConfig struct {
	URL          string        `envconfig:"ASSISTANT_URL" toml:"url" default:""`
	Timeout      time.Duration `envconfig:"ASSISTANT_TIMEOUT" toml:"timeout" default:"10s"`
	AppName      string        `envconfig:"APP_NAME" toml:"app_name" default:"My App"`
	Industry     string        `envconfig:"APP_INDUSTRY" toml:"industry" default:""`
	ContextNodes int           `envconfig:"ASSISTANT_CONTEXT_NODES" toml:"context_nodes" default:"20"`
}

// StorageConfig holds document persistence configuration.
type StorageConfig struct {
	Path string `envconfig:"STORAGE_PATH" toml:"path" default:"./data"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" default:"info"`
	Development bool   `envconfig:"LOG_DEV" toml:"development" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled" default:"true"`
}

// Load loads configuration from environment variables. When ENGINE_CONFIG
// names a TOML file, its values are applied on top.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadFile loads configuration from a TOML file over defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
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
		Assistant: AssistantConfig{
			Timeout:      10 * time.Second,
			AppName:      "My App",
			ContextNodes: 20,
		},
		Storage: StorageConfig{
			Path: "./data",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Addr returns the host:port the HTTP server binds.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
