package model

import "errors"

var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrForbidden        = errors.New("not allowed to modify this comment")
	ErrCoverRequired    = errors.New("cover image is required")
	ErrEmptyUpdate      = errors.New("no fields to update")
)
