package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/blogpost/repository"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/storage"
)

type blogPostService struct {
	repo     repository.Repository
	blobs    storage.BlobStore
	authors  AuthorLookup
	notifier email.Notifier
	now      func() time.Time
}

func NewBlogPostService(
	repo repository.Repository,
	blobs storage.BlobStore,
	authors AuthorLookup,
	notifier email.Notifier,
) Service {
	return &blogPostService{
		repo:     repo,
		blobs:    blobs,
		authors:  authors,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// POSTS
// ========================================

func (s *blogPostService) List(ctx context.Context, page model.Page) (*model.ListResponse, error) {
	return s.list(ctx, "", page)
}

// ListByAuthor - authorRef so sánh theo giá trị, author không cần tồn tại
func (s *blogPostService) ListByAuthor(ctx context.Context, authorID string, page model.Page) (*model.ListResponse, error) {
	return s.list(ctx, authorID, page)
}

func (s *blogPostService) list(ctx context.Context, authorID string, page model.Page) (*model.ListResponse, error) {
	posts, total, err := s.repo.List(ctx, repository.ListFilter{
		Author: authorID,
		Offset: page.Offset(),
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &model.ListResponse{
		Posts:       posts,
		CurrentPage: page.Number,
		TotalPages:  page.TotalPages(total),
	}, nil
}

func (s *blogPostService) GetByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validate trước khi upload để không để lại blob mồ côi khi body sai
func (s *blogPostService) Create(ctx context.Context, authorID string, req model.CreateBlogPostRequest, cover *storage.File) (*model.BlogPost, error) {
	if cover == nil {
		return nil, model.ErrCoverRequired
	}

	// cover tạm để validate các field khác
	draft := req.ToBlogPost(authorID, "pending")
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	obj, err := s.blobs.UploadImage(ctx, storage.FolderCovers, cover)
	if err != nil {
		return nil, err
	}

	post := req.ToBlogPost(authorID, obj.URL)
	if err := s.repo.Create(ctx, &post); err != nil {
		s.removeBlob(ctx, obj.Key)
		return nil, err
	}

	s.notifyPublished(ctx, &post)
	return &post, nil
}

// Update merge patch lên bản hiện tại rồi validate lại toàn bộ document
func (s *blogPostService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	if req.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, patchFrom(req, current))
}

func (s *blogPostService) UpdateCover(ctx context.Context, id uuid.UUID, cover *storage.File) (*model.BlogPost, error) {
	if cover == nil {
		return nil, model.ErrCoverRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	obj, err := s.blobs.UploadImage(ctx, storage.FolderCovers, cover)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Update(ctx, id, repository.Patch{Cover: &obj.URL})
	if err != nil {
		s.removeBlob(ctx, obj.Key)
		return nil, err
	}
	return post, nil
}

func (s *blogPostService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ========================================
// COMMENTS
// ========================================

func (s *blogPostService) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *blogPostService) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*model.Comment, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	_, c := post.FindComment(commentID)
	if c == nil {
		return nil, model.ErrCommentNotFound
	}
	return c, nil
}

func (s *blogPostService) AddComment(ctx context.Context, postID uuid.UUID, authorID string, req model.CommentRequest) ([]model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.AppendComment(ctx, postID, model.NewComment(authorID, req, s.now()))
}

// UpdateComment - chỉ tác giả của comment được sửa
func (s *blogPostService) UpdateComment(ctx context.Context, postID, commentID uuid.UUID, callerID string, req model.CommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated model.Comment
	_, err := s.repo.MutateComments(ctx, postID, func(post *model.BlogPost) error {
		_, c := post.FindComment(commentID)
		if c == nil {
			return model.ErrCommentNotFound
		}
		if !c.IsOwnedBy(callerID) {
			return model.ErrForbidden
		}

		c, err := post.UpdateComment(commentID, req, s.now())
		if err != nil {
			return err
		}
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment - tác giả comment hoặc chủ post được xóa
func (s *blogPostService) DeleteComment(ctx context.Context, postID, commentID uuid.UUID, callerID string) error {
	_, err := s.repo.MutateComments(ctx, postID, func(post *model.BlogPost) error {
		_, c := post.FindComment(commentID)
		if c == nil {
			return model.ErrCommentNotFound
		}
		if !c.IsOwnedBy(callerID) && !post.IsOwnedBy(callerID) {
			return model.ErrForbidden
		}
		return post.RemoveComment(commentID)
	})
	return err
}

// ========================================
// HELPERS
// ========================================

// patchFrom lấy giá trị đã normalize từ document đã merge
func patchFrom(req model.UpdateBlogPostRequest, merged *model.BlogPost) repository.Patch {
	var patch repository.Patch
	if req.Category != nil {
		patch.Category = &merged.Category
	}
	if req.Title != nil {
		patch.Title = &merged.Title
	}
	if req.Content != nil {
		patch.Content = &merged.Content
	}
	if req.Cover != nil {
		patch.Cover = &merged.Cover
	}
	if req.ReadTime != nil {
		patch.ReadTime = merged.ReadTime
	}
	return patch
}

func (s *blogPostService) removeBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to remove orphaned cover")
	}
}

// notifyPublished best-effort: lookup hoặc enqueue lỗi chỉ log
func (s *blogPostService) notifyPublished(ctx context.Context, post *model.BlogPost) {
	if s.notifier == nil || s.authors == nil {
		return
	}

	authorID, err := uuid.Parse(post.Author)
	if err != nil {
		return
	}

	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("Skipping post published email: author lookup failed")
		return
	}

	err = s.notifier.NotifyPostPublished(ctx, email.PostPublishedEmailData{
		Email:     author.Email,
		Name:      author.Name,
		PostID:    post.ID.String(),
		PostTitle: post.Title,
	})
	if err != nil {
		log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("Failed to enqueue post published email")
	}
}
