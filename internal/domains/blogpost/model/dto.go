package model

import "strings"

// CreateBlogPostRequest - multipart form của POST /blogPosts, file cover đi riêng
type CreateBlogPostRequest struct {
	Category      string `form:"category"`
	Title         string `form:"title"`
	Content       string `form:"content"`
	ReadTimeValue *int   `form:"readTimeValue"`
	ReadTimeUnit  string `form:"readTimeUnit"`
}

// ToBlogPost dựng entity, cover được set sau khi upload
func (r CreateBlogPostRequest) ToBlogPost(authorID, cover string) BlogPost {
	p := BlogPost{
		Category: r.Category,
		Title:    r.Title,
		Content:  r.Content,
		Cover:    cover,
		Author:   authorID,
		Comments: []Comment{},
	}
	if r.ReadTimeValue != nil || strings.TrimSpace(r.ReadTimeUnit) != "" {
		rt := ReadTime{Unit: r.ReadTimeUnit}
		if r.ReadTimeValue != nil {
			rt.Value = *r.ReadTimeValue
		}
		p.ReadTime = &rt
	}
	p.Normalize()
	return p
}

// UpdateBlogPostRequest - PUT /blogPosts/:id, partial: nil = giữ nguyên
// author và comments không đổi được qua route này
type UpdateBlogPostRequest struct {
	Category *string   `json:"category,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Cover    *string   `json:"cover,omitempty"`
	ReadTime *ReadTime `json:"readTime,omitempty"`
}

func (r UpdateBlogPostRequest) IsEmpty() bool {
	return r.Category == nil && r.Title == nil && r.Content == nil && r.Cover == nil && r.ReadTime == nil
}

// ApplyTo merge patch lên bản hiện tại
func (r UpdateBlogPostRequest) ApplyTo(p *BlogPost) {
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Cover != nil {
		p.Cover = *r.Cover
	}
	if r.ReadTime != nil {
		rt := *r.ReadTime
		p.ReadTime = &rt
	}
	p.Normalize()
}
