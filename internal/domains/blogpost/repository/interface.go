package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blogpost/model"
)

// ListFilter - Author rỗng = tất cả posts
type ListFilter struct {
	Author string
	Offset int
	Limit  int
}

// Patch - các cột được ghi trong partial update, nil = không đổi
type Patch struct {
	Category *string
	Title    *string
	Content  *string
	Cover    *string
	ReadTime *model.ReadTime
}

// CommentMutation chạy trên post đã lock, trả error thì rollback
type CommentMutation func(post *model.BlogPost) error

type Repository interface {
	Create(ctx context.Context, p *model.BlogPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	List(ctx context.Context, filter ListFilter) ([]model.BlogPost, int, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*model.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendComment là một UPDATE duy nhất, trả về list comment sau khi append
	AppendComment(ctx context.Context, postID uuid.UUID, c model.Comment) ([]model.Comment, error)
	// MutateComments load post FOR UPDATE, chạy fn, ghi lại comments trong cùng transaction
	MutateComments(ctx context.Context, postID uuid.UUID, fn CommentMutation) (*model.BlogPost, error)
}
