package storage

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/segmentio/ksuid"
)

var (
	ErrNotAnImage = errors.New("uploaded file is not a supported image")
	ErrEmptyFile  = errors.New("uploaded file is empty")
)

// Folders trong bucket
const (
	FolderAvatars = "blog-avatars"
	FolderCovers  = "blog-covers"
)

// allowedImageTypes - chỉ nhận ảnh raster, không nhận svg
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// File là một upload đã nằm trong memory (multipart), đọc được nhiều lần
type File struct {
	Content  io.ReadSeeker
	Size     int64
	Filename string
}

// Close đóng Content nếu nó là multipart.File
func (f *File) Close() error {
	if c, ok := f.Content.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Object là kết quả upload: key trong bucket + URL public
type Object struct {
	Key string
	URL string
}

// DetectImage sniff magic bytes rồi seek về đầu để upload lại từ byte 0
func DetectImage(r io.ReadSeeker) (*mimetype.MIME, error) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	for _, allowed := range allowedImageTypes {
		if mime.Is(allowed) {
			return mime, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotAnImage, mime.String())
}

// ObjectKey: <folder>/<ksuid><ext>, ksuid sort theo thời gian tạo
func ObjectKey(folder, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(folder, ksuid.New().String()+ext)
}
