package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/blogpost/repository"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/storage"
)

// ========================================
// FAKES
// ========================================

type fakeRepo struct {
	mu    sync.Mutex
	posts []*model.BlogPost

	createErr error
}

func clonePost(p *model.BlogPost) *model.BlogPost {
	cp := *p
	cp.Comments = append([]model.Comment{}, p.Comments...)
	if p.ReadTime != nil {
		rt := *p.ReadTime
		cp.ReadTime = &rt
	}
	return &cp
}

func (f *fakeRepo) find(id uuid.UUID) (int, *model.BlogPost) {
	for i, p := range f.posts {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (f *fakeRepo) Create(_ context.Context, p *model.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}
	f.posts = append(f.posts, clonePost(p))
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, p := f.find(id)
	if p == nil {
		return nil, model.ErrBlogPostNotFound
	}
	return clonePost(p), nil
}

func (f *fakeRepo) List(_ context.Context, filter repository.ListFilter) ([]model.BlogPost, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]model.BlogPost, 0)
	for _, p := range f.posts {
		if filter.Author == "" || p.Author == filter.Author {
			matched = append(matched, *clonePost(p))
		}
	}
	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, patch repository.Patch) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, p := f.find(id)
	if p == nil {
		return nil, model.ErrBlogPostNotFound
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Cover != nil {
		p.Cover = *patch.Cover
	}
	if patch.ReadTime != nil {
		rt := *patch.ReadTime
		p.ReadTime = &rt
	}
	return clonePost(p), nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, _ := f.find(id)
	if i < 0 {
		return model.ErrBlogPostNotFound
	}
	f.posts = append(f.posts[:i], f.posts[i+1:]...)
	return nil
}

func (f *fakeRepo) AppendComment(_ context.Context, postID uuid.UUID, c model.Comment) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, p := f.find(postID)
	if p == nil {
		return nil, model.ErrBlogPostNotFound
	}
	p.AppendComment(c)
	return append([]model.Comment{}, p.Comments...), nil
}

func (f *fakeRepo) MutateComments(_ context.Context, postID uuid.UUID, fn repository.CommentMutation) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, p := f.find(postID)
	if p == nil {
		return nil, model.ErrBlogPostNotFound
	}
	working := clonePost(p)
	if err := fn(working); err != nil {
		return nil, err
	}
	f.posts[i] = working
	return clonePost(working), nil
}

type fakeBlobs struct {
	uploads []string
	deleted []string
	err     error
}

func (f *fakeBlobs) UploadImage(_ context.Context, folder string, _ *storage.File) (*storage.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := fmt.Sprintf("%s/%d.png", folder, len(f.uploads))
	f.uploads = append(f.uploads, key)
	return &storage.Object{Key: key, URL: "http://cdn/" + key}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeAuthors struct {
	authors map[uuid.UUID]*authormodel.Author
}

func (f *fakeAuthors) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	return a, nil
}

type fakeNotifier struct {
	published []email.PostPublishedEmailData
	err       error
}

func (f *fakeNotifier) NotifyWelcome(context.Context, email.WelcomeEmailData) error { return nil }

func (f *fakeNotifier) NotifyPostPublished(_ context.Context, data email.PostPublishedEmailData) error {
	f.published = append(f.published, data)
	return f.err
}

type fixture struct {
	svc      Service
	repo     *fakeRepo
	blobs    *fakeBlobs
	notifier *fakeNotifier
	owner    string
}

func newFixture() fixture {
	ownerID := uuid.New()
	repo := &fakeRepo{}
	blobs := &fakeBlobs{}
	notifier := &fakeNotifier{}
	authors := &fakeAuthors{authors: map[uuid.UUID]*authormodel.Author{
		ownerID: {ID: ownerID, Name: "Ada", Email: "ada@example.com"},
	}}
	return fixture{
		svc:      NewBlogPostService(repo, blobs, authors, notifier),
		repo:     repo,
		blobs:    blobs,
		notifier: notifier,
		owner:    ownerID.String(),
	}
}

func validCreate() model.CreateBlogPostRequest {
	return model.CreateBlogPostRequest{Category: "tech", Title: "Hello", Content: "Body"}
}

func (f fixture) createPost(t *testing.T) *model.BlogPost {
	t.Helper()
	p, err := f.svc.Create(context.Background(), f.owner, validCreate(), &storage.File{})
	require.NoError(t, err)
	return p
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// ========================================
// TESTS
// ========================================

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads cover and notifies", func(t *testing.T) {
		f := newFixture()

		p := f.createPost(t)
		assert.Equal(t, f.owner, p.Author)
		assert.Equal(t, "http://cdn/blog-covers/0.png", p.Cover)

		require.Len(t, f.notifier.published, 1)
		assert.Equal(t, "ada@example.com", f.notifier.published[0].Email)
		assert.Equal(t, p.ID.String(), f.notifier.published[0].PostID)
	})

	t.Run("cover required", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, f.owner, validCreate(), nil)
		assert.ErrorIs(t, err, model.ErrCoverRequired)
	})

	t.Run("invalid fields do not upload", func(t *testing.T) {
		f := newFixture()

		req := validCreate()
		req.Content = "   "
		_, err := f.svc.Create(ctx, f.owner, req, &storage.File{})

		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Empty(t, f.blobs.uploads)
	})

	t.Run("store failure removes uploaded cover", func(t *testing.T) {
		f := newFixture()
		f.repo.createErr = errors.New("db down")

		_, err := f.svc.Create(ctx, f.owner, validCreate(), &storage.File{})
		require.Error(t, err)
		assert.Equal(t, f.blobs.uploads, f.blobs.deleted)
	})

	t.Run("notification failure is swallowed", func(t *testing.T) {
		f := newFixture()
		f.notifier.err = errors.New("queue down")

		_, err := f.svc.Create(ctx, f.owner, validCreate(), &storage.File{})
		assert.NoError(t, err)
	})

	t.Run("unknown author still publishes", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, uuid.NewString(), validCreate(), &storage.File{})
		assert.NoError(t, err)
		assert.Empty(t, f.notifier.published)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for i := 0; i < 12; i++ {
		f.createPost(t)
	}

	resp, err := f.svc.List(ctx, model.NewPage(2, 5))
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 5)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 3, resp.TotalPages)

	byAuthor, err := f.svc.ListByAuthor(ctx, f.owner, model.NewPage(1, 100))
	require.NoError(t, err)
	assert.Len(t, byAuthor.Posts, 12)

	none, err := f.svc.ListByAuthor(ctx, uuid.NewString(), model.NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, none.Posts)
	assert.Equal(t, 0, none.TotalPages)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.createPost(t)

	updated, err := f.svc.Update(ctx, p.ID, model.UpdateBlogPostRequest{Title: strPtr(" New "), ReadTime: &model.ReadTime{Value: 3, Unit: "minute"}})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Body", updated.Content)
	require.NotNil(t, updated.ReadTime)

	_, err = f.svc.Update(ctx, p.ID, model.UpdateBlogPostRequest{Content: strPtr("")})
	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Update(ctx, p.ID, model.UpdateBlogPostRequest{})
	assert.ErrorIs(t, err, model.ErrEmptyUpdate)

	_, err = f.svc.Update(ctx, uuid.New(), model.UpdateBlogPostRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, model.ErrBlogPostNotFound)
}

func TestUpdateCoverAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.createPost(t)

	updated, err := f.svc.UpdateCover(ctx, p.ID, &storage.File{})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/blog-covers/1.png", updated.Cover)

	_, err = f.svc.UpdateCover(ctx, uuid.New(), &storage.File{})
	assert.ErrorIs(t, err, model.ErrBlogPostNotFound)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	_, err = f.svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, model.ErrBlogPostNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID), model.ErrBlogPostNotFound)
}

func TestComments(t *testing.T) {
	ctx := context.Background()

	t.Run("append preserves prior order and ids", func(t *testing.T) {
		f := newFixture()
		p := f.createPost(t)
		commenter := uuid.NewString()

		first, err := f.svc.AddComment(ctx, p.ID, commenter, model.CommentRequest{Content: "one"})
		require.NoError(t, err)
		require.Len(t, first, 1)

		second, err := f.svc.AddComment(ctx, p.ID, commenter, model.CommentRequest{Content: "two", Rate: intPtr(5)})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, commenter, second[1].Author)

		listed, err := f.svc.ListComments(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, second, listed)

		got, err := f.svc.GetComment(ctx, p.ID, second[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "two", got.Content)
	})

	t.Run("not found paths", func(t *testing.T) {
		f := newFixture()
		p := f.createPost(t)

		_, err := f.svc.AddComment(ctx, uuid.New(), f.owner, model.CommentRequest{Content: "x"})
		assert.ErrorIs(t, err, model.ErrBlogPostNotFound)
		_, err = f.svc.ListComments(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrBlogPostNotFound)
		_, err = f.svc.GetComment(ctx, p.ID, uuid.New())
		assert.ErrorIs(t, err, model.ErrCommentNotFound)
		_, err = f.svc.UpdateComment(ctx, p.ID, uuid.New(), f.owner, model.CommentRequest{Content: "x"})
		assert.ErrorIs(t, err, model.ErrCommentNotFound)
		assert.ErrorIs(t, f.svc.DeleteComment(ctx, p.ID, uuid.New(), f.owner), model.ErrCommentNotFound)
	})

	t.Run("invalid comment", func(t *testing.T) {
		f := newFixture()
		p := f.createPost(t)

		_, err := f.svc.AddComment(ctx, p.ID, f.owner, model.CommentRequest{Content: "x", Rate: intPtr(9)})
		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("only the comment author may update", func(t *testing.T) {
		f := newFixture()
		p := f.createPost(t)
		commenter := uuid.NewString()

		comments, err := f.svc.AddComment(ctx, p.ID, commenter, model.CommentRequest{Content: "draft"})
		require.NoError(t, err)
		cid := comments[0].ID

		_, err = f.svc.UpdateComment(ctx, p.ID, cid, f.owner, model.CommentRequest{Content: "hijack"})
		assert.ErrorIs(t, err, model.ErrForbidden, "post owner cannot edit others' comments")

		updated, err := f.svc.UpdateComment(ctx, p.ID, cid, commenter, model.CommentRequest{Content: "final", Rate: intPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Content)
		assert.Equal(t, cid, updated.ID)

		got, err := f.svc.GetComment(ctx, p.ID, cid)
		require.NoError(t, err)
		assert.Equal(t, "final", got.Content)
	})

	t.Run("comment author or post owner may delete", func(t *testing.T) {
		f := newFixture()
		p := f.createPost(t)
		commenter := uuid.NewString()

		comments, err := f.svc.AddComment(ctx, p.ID, commenter, model.CommentRequest{Content: "a"})
		require.NoError(t, err)
		comments, err = f.svc.AddComment(ctx, p.ID, commenter, model.CommentRequest{Content: "b"})
		require.NoError(t, err)

		assert.ErrorIs(t, f.svc.DeleteComment(ctx, p.ID, comments[0].ID, uuid.NewString()), model.ErrForbidden)

		require.NoError(t, f.svc.DeleteComment(ctx, p.ID, comments[0].ID, commenter))
		require.NoError(t, f.svc.DeleteComment(ctx, p.ID, comments[1].ID, f.owner))

		left, err := f.svc.ListComments(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}
