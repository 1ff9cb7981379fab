package cache

import (
	"context"
	"time"
)

// Store là key/value ngắn hạn (OAuth state). Không dùng để cache entity
type Store interface {
	// Set lưu value với TTL, ghi đè nếu key đã tồn tại
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Take đọc và xóa key trong một lệnh (one-time use)
	// Returns: (value, found, error)
	Take(ctx context.Context, key string) (string, bool, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
