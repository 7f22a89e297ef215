package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/blockdrop/internal/api"
	"github.com/mcoot/blockdrop/internal/factory"
	"github.com/mcoot/blockdrop/internal/server"
	redisstorage "github.com/mcoot/blockdrop/internal/storage/redis"
)

const (
	sessionJanitorInterval = 10 * time.Minute
	hubCleanupInterval     = time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		PresetsPath: os.Getenv("PRESETS_PATH"),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	if raw := os.Getenv("RANDOM_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			logger.Error("invalid RANDOM_SEED", slog.String("value", raw))
			os.Exit(1)
		}
		cfg.RandomSeed = &seed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	go app.AuthService.RunJanitor(ctx, sessionJanitorInterval)
	go cleanupHubs(ctx, app, logger)

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	srv := api.NewServer(server.NewHandler(app, logger, findStaticDir()), serverConfig, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("server starting",
		slog.Int("port", serverConfig.Port),
		slog.String("storage", storageName(cfg.StorageType)),
		slog.Int("rows", app.GameConfig.Rows),
		slog.Int("cols", app.GameConfig.Cols),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func storageName(t string) string {
	if t == "" {
		return factory.StorageTypeMemory
	}
	return t
}

// cleanupHubs drops event hubs that nobody is watching any more
func cleanupHubs(ctx context.Context, app *factory.App, logger *slog.Logger) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.HubManager.CleanupEmptyHubs(); n > 0 {
				logger.Debug("idle event hubs removed", slog.Int("count", n))
			}
		}
	}
}

// findStaticDir returns STATIC_DIR, or internal/web/static when it exists
func findStaticDir() string {
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		return dir
	}
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
