package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"anoa.com/filmorate/internal/bootstrap"
	"anoa.com/filmorate/internal/config"
	"anoa.com/filmorate/internal/server"
	"anoa.com/filmorate/pkg/database"
	"anoa.com/filmorate/pkg/logger"
	"github.com/meilisearch/meilisearch-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database connection failed")
	}
	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoData(ctx, db); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, live feed disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps := server.Deps{DB: db, RedisClient: redisClient}
	if cfg.SearchBackend == "meili" {
		deps.MeiliClient = meilisearch.New(meiliHost(cfg.MeiliSearchHost), meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	srv, err := server.NewServer(cfg, deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}

	logger.Info().
		Str("env", cfg.AppEnv).
		Str("search", cfg.SearchBackend).
		Bool("redis", redisClient != nil).
		Msg("filmorate starting")

	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("server stopped")
}

func meiliHost(host string) string {
	if host == "" {
		return "http://localhost:7700"
	}
	if !strings.HasPrefix(host, "http") {
		return "http://" + host + ":7700"
	}
	return host
}
