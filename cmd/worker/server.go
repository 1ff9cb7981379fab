package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

func redisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func newServeMux(handlers *HandlerRegistry) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)
	return mux
}

// setupAsynqServer creates the server and starts consuming the email queue
func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := newServeMux(handlers)

	srv := asynq.NewServer(
		redisClientOpt(cfg.Redis),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueEmail: 10,
			},
			Concurrency:  cfg.Worker.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(logTaskFailure),
			Logger:       newAsynqLogger(),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// logTaskFailure - lần retry cuối fail thì task bị archive (dropped)
func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	event := log.Warn()
	msg := "[Asynq] Task failed, will retry"
	if retried >= maxRetry {
		event = log.Error()
		msg = "[Asynq] Task failed permanently, dropped"
	}

	event.Err(err).
		Str("type", task.Type()).
		Int("retried", retried).
		Int("max_retry", maxRetry).
		Msg(msg)
}

// Shutdown đợi các task đang chạy xong (asynq tự timeout theo ShutdownTimeout)
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
