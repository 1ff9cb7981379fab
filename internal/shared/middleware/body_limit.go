package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit cắt request body ở maxBytes, dùng cho các route multipart upload
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
