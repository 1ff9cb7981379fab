package main

import (
	"github.com/hibiken/asynq"

	"blog-backend/internal/infrastructure/email"
	emailjob "blog-backend/internal/infrastructure/email/job"
	"blog-backend/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	welcome       *emailjob.WelcomeEmailHandler
	postPublished *emailjob.PostPublishedEmailHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(emailSvc email.EmailService) *HandlerRegistry {
	return &HandlerRegistry{
		welcome:       emailjob.NewWelcomeEmailHandler(emailSvc),
		postPublished: emailjob.NewPostPublishedEmailHandler(emailSvc),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendWelcomeEmail, h.welcome.ProcessTask)
	mux.HandleFunc(shared.TypeSendPostPublishedEmail, h.postPublished.ProcessTask)
}
