package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/email"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}

	log.Info().Msg("Blog worker starting...")

	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	checker := &HealthChecker{redis: redisClient}
	if err := checker.checkAll(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	emailSvc := email.NewSMTPEmailService(cfg.Email, cfg.App.FrontendURL)
	handlers := initializeHandlers(emailSvc)

	srv := setupAsynqServer(cfg, handlers)
	healthSrv := checker.startHealthCheckServer(cfg.Worker.HealthPort)

	waitForShutdown(srv, healthSrv)
}

func waitForShutdown(srv *asynqServer, healthSrv *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("[Health] Forced shutdown")
	}

	log.Info().Msg("[Shutdown] Stopped")
}
