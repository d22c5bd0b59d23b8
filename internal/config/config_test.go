package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campsight/camp-weather-service/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10*time.Second, cfg.ForecastTimeout)
	assert.Equal(t, 10*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.SyncTimeout)
	assert.Empty(t, cfg.UserID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CAMP_USER_ID", "user-1")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FORECAST_TIMEOUT", "5s")
	t.Setenv("SYNC_INTERVAL", "15m")
	t.Setenv("SYNC_TIMEOUT", "1m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, "text", cfg.GetLogFormat())
	assert.Equal(t, "user-1", cfg.UserID)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	assert.Equal(t, "hunter2", cfg.RedisPassword)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.ForecastTimeout)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.Equal(t, time.Minute, cfg.SyncTimeout)
}

func TestLoadValidation(t *testing.T) {
	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("SYNC_INTERVAL", "soon")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SYNC_INTERVAL")
	})

	t.Run("sync interval too short", func(t *testing.T) {
		t.Setenv("SYNC_INTERVAL", "30s")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1m")
	})

	t.Run("invalid redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "primary")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_DB")
	})

	t.Run("negative duration", func(t *testing.T) {
		t.Setenv("FORECAST_TIMEOUT", "-5s")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FORECAST_TIMEOUT")
	})
}
