package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/shared"
)

const requestIDHeader = "X-Request-ID"

// RequestID giữ X-Request-ID của client nếu có, không thì sinh uuid mới
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(shared.ContextKeyRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
