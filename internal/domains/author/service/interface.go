package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/infrastructure/storage"
)

// Service định nghĩa business logic cho authors
type Service interface {
	// Auth
	Register(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	FindOrCreateByOAuth(ctx context.Context, profile model.OAuthProfile) (*model.Author, error)

	// Profile
	List(ctx context.Context) ([]model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest) (*model.Author, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, file *storage.File) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer - *jwt.Manager thỏa mãn
type TokenIssuer interface {
	GenerateAccessToken(authorID string) (string, error)
}
