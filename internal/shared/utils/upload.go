package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/infrastructure/storage"
)

var (
	ErrFileMissing  = errors.New("file is required")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// FormFile lấy file upload từ multipart form field
// Caller phải Close() file trả về
func FormFile(c *gin.Context, field string, maxBytes int64) (*storage.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if isTooLarge(err) {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, field)
	}

	if fh.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}

	return &storage.File{Content: f, Size: fh.Size, Filename: fh.Filename}, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
