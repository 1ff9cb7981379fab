package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
)

// Repository định nghĩa data access cho authors
type Repository interface {
	Create(ctx context.Context, a *model.Author) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByEmail(ctx context.Context, email string) (*model.Author, error)
	FindByOAuthID(ctx context.Context, oauthID string) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*model.Author, error)
	LinkOAuth(ctx context.Context, id uuid.UUID, oauthID string) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
