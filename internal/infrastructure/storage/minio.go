package storage

import (
	"context"
	"fmt"
	"strings"

	"blog-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// BlobStore nhận file stream và trả về URL bền vững
type BlobStore interface {
	UploadImage(ctx context.Context, folder string, file *File) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// MinIOStorage handles file uploads to MinIO
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ BlobStore = (*MinIOStorage)(nil)

// NewMinIOStorage khởi tạo MinIO client, tạo bucket nếu chưa có
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("[MINIO] Bucket created")
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("%s://%s", client.EndpointURL().Scheme, client.EndpointURL().Host)
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// UploadImage stream file lên MinIO sau khi kiểm tra magic bytes
// key: <folder>/<ksuid>.<ext>, vd blog-covers/2Cx...Q.png
func (s *MinIOStorage) UploadImage(ctx context.Context, folder string, file *File) (*Object, error) {
	if file == nil || file.Size == 0 {
		return nil, ErrEmptyFile
	}

	mime, err := DetectImage(file.Content)
	if err != nil {
		return nil, err
	}

	key := ObjectKey(folder, mime.Extension())

	_, err = s.client.PutObject(ctx, s.bucket, key, file.Content, file.Size, minio.PutObjectOptions{
		ContentType: mime.String(),
		UserMetadata: map[string]string{
			"original-filename": file.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	return &Object{Key: key, URL: s.URL(key)}, nil
}

// URL - format: http://localhost:9000/blog/blog-covers/<key>
func (s *MinIOStorage) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

// Delete xóa một file khỏi MinIO
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// HealthCheck - bucket phải còn truy cập được
func (s *MinIOStorage) HealthCheck(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio bucket check failed: %w", err)
	}
	return nil
}
