package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MaxTitleLength    = 200
	MaxCategoryLength = 100
	MaxReadTimeUnit   = 20
)

// ReadTime - thời gian đọc ước lượng, vd {5, "minute"}
type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

func (r ReadTime) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Required, validation.Min(1)),
		validation.Field(&r.Unit, validation.Required, validation.RuneLength(1, MaxReadTimeUnit)),
	)
}

// BlogPost là aggregate root, comments nằm embedded theo thứ tự append
type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Cover     string    `json:"cover"`
	Content   string    `json:"content"`
	Author    string    `json:"author"` // id của author dạng string, không join
	ReadTime  *ReadTime `json:"readTime,omitempty"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trim các field text
func (p *BlogPost) Normalize() {
	p.Category = strings.TrimSpace(p.Category)
	p.Title = strings.TrimSpace(p.Title)
	p.Cover = strings.TrimSpace(p.Cover)
	p.Content = strings.TrimSpace(p.Content)
	p.Author = strings.ToLower(strings.TrimSpace(p.Author))
	if p.ReadTime != nil {
		p.ReadTime.Unit = strings.TrimSpace(p.ReadTime.Unit)
	}
}

// Validate chạy trên document đã merge (create lẫn partial update)
func (p BlogPost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Category, validation.Required.Error("category is required"), validation.RuneLength(1, MaxCategoryLength)),
		validation.Field(&p.Title, validation.Required.Error("title is required"), validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&p.Cover, validation.Required.Error("cover is required")),
		validation.Field(&p.Content, validation.Required.Error("content is required")),
		validation.Field(&p.Author, validation.Required),
		validation.Field(&p.ReadTime),
	)
}

// ========================================
// COMMENT COLLECTION
// ========================================

// FindComment trả về vị trí comment trong list, -1 nếu không có
func (p *BlogPost) FindComment(id uuid.UUID) (int, *Comment) {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return i, &p.Comments[i]
		}
	}
	return -1, nil
}

// AppendComment thêm vào cuối, thứ tự và id các comment cũ giữ nguyên
func (p *BlogPost) AppendComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// UpdateComment ghi đè content/rate của comment id
func (p *BlogPost) UpdateComment(id uuid.UUID, req CommentRequest, now time.Time) (*Comment, error) {
	i, c := p.FindComment(id)
	if i < 0 {
		return nil, ErrCommentNotFound
	}
	c.Content = strings.TrimSpace(req.Content)
	c.Rate = req.Rate
	c.UpdatedAt = now
	return c, nil
}

// RemoveComment xóa comment id, các comment còn lại giữ thứ tự
func (p *BlogPost) RemoveComment(id uuid.UUID) error {
	i, _ := p.FindComment(id)
	if i < 0 {
		return ErrCommentNotFound
	}
	p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
	return nil
}

// IsOwnedBy so sánh authorRef theo giá trị
func (p *BlogPost) IsOwnedBy(authorID string) bool {
	return p.Author == strings.ToLower(authorID)
}

// ListResponse - GET /blogPosts
type ListResponse struct {
	Posts       []BlogPost `json:"posts"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
