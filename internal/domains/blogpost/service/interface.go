package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/infrastructure/storage"
)

type Service interface {
	// Posts
	List(ctx context.Context, page model.Page) (*model.ListResponse, error)
	ListByAuthor(ctx context.Context, authorID string, page model.Page) (*model.ListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	Create(ctx context.Context, authorID string, req model.CreateBlogPostRequest, cover *storage.File) (*model.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBlogPostRequest) (*model.BlogPost, error)
	UpdateCover(ctx context.Context, id uuid.UUID, cover *storage.File) (*model.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Comments
	ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*model.Comment, error)
	AddComment(ctx context.Context, postID uuid.UUID, authorID string, req model.CommentRequest) ([]model.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID uuid.UUID, callerID string, req model.CommentRequest) (*model.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID, callerID string) error
}

// AuthorLookup - lấy email/tên để gửi notification
type AuthorLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}
