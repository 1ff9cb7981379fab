package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	MaxCommentLength = 2000
	MinRate          = 1
	MaxRate          = 5
)

// Comment thuộc về đúng một BlogPost, không có lifecycle riêng
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Rate      *int      `json:"rate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsOwnedBy so sánh authorRef theo giá trị
func (c *Comment) IsOwnedBy(authorID string) bool {
	return c.Author == strings.ToLower(authorID)
}

// CommentRequest - body của POST/PUT comment, field lạ bị reject ở handler
type CommentRequest struct {
	Content string `json:"content"`
	Rate    *int   `json:"rate,omitempty"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.By(notBlank("content is required")),
			validation.RuneLength(1, MaxCommentLength),
		),
		validation.Field(&r.Rate, validation.NilOrNotEmpty, validation.Min(MinRate), validation.Max(MaxRate)),
	)
}

// NewComment tạo comment với id mới, tagged với caller
func NewComment(authorID string, req CommentRequest, now time.Time) Comment {
	return Comment{
		ID:        uuid.New(),
		Author:    strings.ToLower(authorID),
		Content:   strings.TrimSpace(req.Content),
		Rate:      req.Rate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", msg)
		}
		return nil
	}
}
