package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/campsight/camp-weather-service/internal/adapter/httpapi"
	"github.com/campsight/camp-weather-service/internal/adapter/openmeteo"
	"github.com/campsight/camp-weather-service/internal/adapter/redisstore"
	"github.com/campsight/camp-weather-service/internal/cache"
	"github.com/campsight/camp-weather-service/internal/config"
	"github.com/campsight/camp-weather-service/internal/observability"
	"github.com/campsight/camp-weather-service/internal/scheduler"
	"github.com/campsight/camp-weather-service/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "reason", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := redisstore.New(rdb, logger)
	if err := store.Ping(ctx); err != nil {
		logger.Error("record store unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	fetcher := openmeteo.NewClient(cfg.ForecastTimeout, logger)
	slots := cache.New(fetcher, clockwork.NewRealClock(), logger, metrics)
	provider := weather.NewProvider(store, slots, logger, metrics, cfg.UserID)

	if err := provider.Sync(ctx); err != nil {
		// Not fatal: the scheduler and access-time checks retry.
		logger.Warn("initial sync failed", "error", err)
	}

	sched := scheduler.New(provider, cfg.SyncInterval, cfg.SyncTimeout, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start sync scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := httpapi.NewServer(cfg.HTTPAddr, provider, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
