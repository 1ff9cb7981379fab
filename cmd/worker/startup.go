package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/pkg/cache"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redis cache.Store
}

// checkAll runs all startup checks, dừng ở check fail đầu tiên
func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.checkRedis},
	}

	for _, check := range checks {
		log.Info().Str("check", check.name).Msg("[Startup] Checking...")
		if err := check.fn(ctx); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("[Startup] Check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("[Startup] OK")
	}

	return nil
}

// checkRedis - asynq dùng cùng Redis, Redis OK thì broker OK
func (h *HealthChecker) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return h.redis.Ping(ctx)
}

// healthRoutes - /health (liveness) và /ready (readiness, ping Redis)
func (h *HealthChecker) healthRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP", "service": "blog-worker"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := h.checkRedis(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "READY"})
	})
	return mux
}

// startHealthCheckServer chạy health server trong goroutine, trả về để shutdown
func (h *HealthChecker) startHealthCheckServer(port string) *http.Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h.healthRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Msg("[Health] Starting health check server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()

	return srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
