package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/pkg/logger"
)

// loadConfig đọc .env (nếu có) rồi dùng chung config.Load với API
// Worker chỉ cần Redis, Email và Worker sections
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	log.Info().
		Str("redis", cfg.Redis.Host).
		Str("smtp", cfg.Email.SMTPHost+":"+cfg.Email.SMTPPort).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("[Config] Worker configuration loaded")

	return cfg, nil
}
