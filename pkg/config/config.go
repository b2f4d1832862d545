// Package config loads tempo settings from defaults, an optional file and
// TEMPO_-prefixed environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TEMPO_"

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string `koanf:"app_env"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Storage. An empty DatabaseURL selects SQLite at SQLitePath.
	DatabaseURL string `koanf:"database_url"`
	SQLitePath  string `koanf:"sqlite_path"`

	// Redis enables cross-process locking when set.
	RedisURL string        `koanf:"redis_url"`
	LockTTL  time.Duration `koanf:"lock_ttl"`

	// RabbitMQ enables broker publishing when set.
	RabbitMQURL             string        `koanf:"rabbitmq_url"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`

	// Outbox
	OutboxBatchSize  int           `koanf:"outbox_batch_size"`
	OutboxMaxRetries int           `koanf:"outbox_max_retries"`
	OutboxRetention  time.Duration `koanf:"outbox_retention"`

	// Output
	MetricsTextfile string `koanf:"metrics_textfile"`
	ExportDir       string `koanf:"export_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	home := tempoHome()
	return Config{
		AppEnv:                  "development",
		LogLevel:                "warn",
		LogFormat:               "text",
		SQLitePath:              filepath.Join(home, "tempo.db"),
		LockTTL:                 30 * time.Second,
		BreakerFailureThreshold: 3,
		BreakerTimeout:          30 * time.Second,
		OutboxBatchSize:         100,
		OutboxMaxRetries:        5,
		OutboxRetention:         14 * 24 * time.Hour,
		ExportDir:               filepath.Join(home, "exports"),
	}
}

// Load reads a local .env, then the optional file at path, then TEMPO_*
// environment variables over the defaults.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	k := koanf.New(".")

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.SQLitePath = expandHome(cfg.SQLitePath)
	cfg.ExportDir = expandHome(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("%w: lock_ttl must be positive", ErrInvalidConfig)
	}
	if c.BreakerFailureThreshold == 0 {
		return fmt.Errorf("%w: breaker_failure_threshold must be at least 1", ErrInvalidConfig)
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("%w: outbox_batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func tempoHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tempo"
	}
	return filepath.Join(home, ".tempo")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
