package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// UserID is the camp user identity this instance tracks weather for.
	// Empty resolves to the no_user steady state.
	UserID string

	// Redis record store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Forecast API.
	ForecastTimeout time.Duration

	// Background sync.
	SyncInterval time.Duration
	SyncTimeout  time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	forecastTimeout, err := parseDuration("FORECAST_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	syncInterval, err := parseDuration("SYNC_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	syncTimeout, err := parseDuration("SYNC_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	redisDB, err := parseInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		UserID: os.Getenv("CAMP_USER_ID"),

		RedisAddr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		ForecastTimeout: forecastTimeout,

		SyncInterval: syncInterval,
		SyncTimeout:  syncTimeout,
	}

	if cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is required")
	}
	if cfg.SyncInterval < time.Minute {
		return nil, errors.New("SYNC_INTERVAL must be at least 1m")
	}

	return cfg, nil
}

// GetLogLevel implements observability.LoggerConfig.
func (c *Config) GetLogLevel() string { return c.LogLevel }

// GetLogFormat implements observability.LoggerConfig.
func (c *Config) GetLogFormat() string { return c.LogFormat }

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
