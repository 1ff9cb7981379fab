package model

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func validPost() BlogPost {
	return BlogPost{
		Category: "tech",
		Title:    "Hello",
		Cover:    "http://cdn/blog-covers/a.png",
		Content:  "Body",
		Author:   uuid.NewString(),
	}
}

func TestBlogPost_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *BlogPost)
		wantErr string
	}{
		{name: "valid", mutate: func(p *BlogPost) {}},
		{name: "valid read time", mutate: func(p *BlogPost) { p.ReadTime = &ReadTime{Value: 5, Unit: "minute"} }},
		{name: "blank content", mutate: func(p *BlogPost) { p.Content = "" }, wantErr: "content"},
		{name: "missing cover", mutate: func(p *BlogPost) { p.Cover = "" }, wantErr: "cover"},
		{name: "missing title", mutate: func(p *BlogPost) { p.Title = "" }, wantErr: "title"},
		{name: "zero read time", mutate: func(p *BlogPost) { p.ReadTime = &ReadTime{Unit: "minute"} }, wantErr: "readTime"},
		{name: "read time without unit", mutate: func(p *BlogPost) { p.ReadTime = &ReadTime{Value: 3} }, wantErr: "readTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPost()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommentRequest_Validate(t *testing.T) {
	assert.NoError(t, CommentRequest{Content: "nice"}.Validate())
	assert.NoError(t, CommentRequest{Content: "nice", Rate: intPtr(5)}.Validate())
	assert.Error(t, CommentRequest{Content: "   "}.Validate())
	assert.Error(t, CommentRequest{Content: "nice", Rate: intPtr(0)}.Validate())
	assert.Error(t, CommentRequest{Content: "nice", Rate: intPtr(6)}.Validate())

	long := make([]rune, MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, CommentRequest{Content: string(long)}.Validate())
}

func TestBlogPost_CommentCollection(t *testing.T) {
	now := time.Now()
	p := validPost()
	author := uuid.NewString()

	first := NewComment(author, CommentRequest{Content: " first "}, now)
	second := NewComment(author, CommentRequest{Content: "second", Rate: intPtr(4)}, now)
	third := NewComment(author, CommentRequest{Content: "third"}, now)
	p.AppendComment(first)
	p.AppendComment(second)
	p.AppendComment(third)

	require.Len(t, p.Comments, 3)
	assert.Equal(t, "first", p.Comments[0].Content)

	i, c := p.FindComment(second.ID)
	assert.Equal(t, 1, i)
	require.NotNil(t, c)
	assert.Equal(t, 4, *c.Rate)

	i, c = p.FindComment(uuid.New())
	assert.Equal(t, -1, i)
	assert.Nil(t, c)

	later := now.Add(time.Minute)
	updated, err := p.UpdateComment(second.ID, CommentRequest{Content: "edited"}, later)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Nil(t, updated.Rate)
	assert.Equal(t, later, p.Comments[1].UpdatedAt)

	require.NoError(t, p.RemoveComment(second.ID))
	require.Len(t, p.Comments, 2)
	assert.Equal(t, first.ID, p.Comments[0].ID)
	assert.Equal(t, third.ID, p.Comments[1].ID)

	assert.ErrorIs(t, p.RemoveComment(second.ID), ErrCommentNotFound)
	_, err = p.UpdateComment(second.ID, CommentRequest{Content: "x"}, later)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestOwnership(t *testing.T) {
	id := uuid.NewString()
	p := validPost()
	p.Author = id
	assert.True(t, p.IsOwnedBy(id))
	assert.False(t, p.IsOwnedBy(uuid.NewString()))

	c := NewComment(id, CommentRequest{Content: "x"}, time.Now())
	assert.True(t, c.IsOwnedBy(id))
}

func TestUpdateBlogPostRequest_ApplyTo(t *testing.T) {
	p := validPost()
	req := UpdateBlogPostRequest{Title: strPtr("  New title "), ReadTime: &ReadTime{Value: 7, Unit: "minute"}}
	req.ApplyTo(&p)

	assert.Equal(t, "New title", p.Title)
	assert.Equal(t, "tech", p.Category)
	require.NotNil(t, p.ReadTime)
	assert.Equal(t, 7, p.ReadTime.Value)

	blank := UpdateBlogPostRequest{Content: strPtr("   ")}
	blank.ApplyTo(&p)
	assert.Error(t, p.Validate(), "merged document is re-validated")

	assert.True(t, UpdateBlogPostRequest{}.IsEmpty())
}

func TestCreateBlogPostRequest_ToBlogPost(t *testing.T) {
	author := uuid.NewString()
	p := CreateBlogPostRequest{Category: " tech ", Title: "T", Content: "C"}.ToBlogPost(author, "http://cdn/x.png")
	assert.Equal(t, "tech", p.Category)
	assert.Nil(t, p.ReadTime)
	assert.NotNil(t, p.Comments)
	assert.NoError(t, p.Validate())

	withRT := CreateBlogPostRequest{Category: "c", Title: "T", Content: "C", ReadTimeValue: intPtr(3), ReadTimeUnit: "minute"}.ToBlogPost(author, "x")
	require.NotNil(t, withRT.ReadTime)
	assert.Equal(t, ReadTime{Value: 3, Unit: "minute"}, *withRT.ReadTime)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
		wantOffset        int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLim: 10, wantOffset: 0},
		{name: "second page", page: 2, limit: 5, wantPage: 2, wantLim: 5, wantOffset: 5},
		{name: "negative", page: -3, limit: -1, wantPage: 1, wantLim: 10, wantOffset: 0},
		{name: "clamped limit", page: 1, limit: 1000, wantPage: 1, wantLim: 100, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantLim, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}

	t.Run("huge page never overflows offset", func(t *testing.T) {
		for _, limit := range []int{1, 10, MaxLimit, 1000} {
			p := NewPage(1<<60+1, limit)
			assert.Equal(t, MaxPage, p.Number)
			assert.GreaterOrEqual(t, p.Offset(), 0)
		}
		p := NewPage(math.MaxInt, MaxLimit)
		assert.GreaterOrEqual(t, p.Offset(), 0)
	})

	assert.Equal(t, 3, NewPage(2, 5).TotalPages(12))
	assert.Equal(t, 2, NewPage(1, 5).TotalPages(10))
	assert.Equal(t, 0, NewPage(1, 5).TotalPages(0))
}
