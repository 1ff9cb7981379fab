package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/infrastructure/email"
)

// ============================================
// Welcome Email Handler
// ============================================

type WelcomeEmailHandler struct {
	emailService email.EmailService
}

func NewWelcomeEmailHandler(emailService email.EmailService) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{emailService: emailService}
}

func (h *WelcomeEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.WelcomeEmailData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal WelcomeEmail payload")
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("email", payload.Email).Msg("Processing welcome email")

	if err := h.emailService.SendWelcomeEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to send welcome email")
		return fmt.Errorf("send welcome email: %w", err)
	}

	log.Info().Str("email", payload.Email).Msg("Welcome email sent")
	return nil
}

// ============================================
// Post Published Email Handler
// ============================================

type PostPublishedEmailHandler struct {
	emailService email.EmailService
}

func NewPostPublishedEmailHandler(emailService email.EmailService) *PostPublishedEmailHandler {
	return &PostPublishedEmailHandler{emailService: emailService}
}

func (h *PostPublishedEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.PostPublishedEmailData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PostPublishedEmail payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.Email).
		Str("post_id", payload.PostID).
		Msg("Processing post published email")

	if err := h.emailService.SendPostPublishedEmail(ctx, payload); err != nil {
		log.Error().Err(err).Str("post_id", payload.PostID).Msg("Failed to send post published email")
		return fmt.Errorf("send post published email: %w", err)
	}

	log.Info().Str("post_id", payload.PostID).Msg("Post published email sent")
	return nil
}
