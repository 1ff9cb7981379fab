package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
	"blog-backend/internal/shared/response"
)

// TokenVerifier - *jwt.Manager thỏa mãn
type TokenVerifier interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware - Access Guard cho các route protected
// Không có header → 401 "token missing"; header sai format / token hỏng / hết hạn → 401 "invalid/expired token"
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			response.Unauthorized(c, "token missing")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Unauthorized(c, "invalid/expired token")
			return
		}

		authorID, err := verifier.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(shared.ContextKeyRequestID)).Msg("token rejected")
			response.Unauthorized(c, "invalid/expired token")
			return
		}

		c.Set(shared.ContextKeyAuthorID, authorID)
		c.Next()
	}
}

// AuthorIDFromContext lấy author id mà AuthMiddleware đã set
func AuthorIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(shared.ContextKeyAuthorID)
	return id, id != ""
}
