package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
	"blog-backend/internal/shared/response"
)

// StatusError - error tự khai báo HTTP status (vd upstream OAuth lỗi → 502)
type StatusError interface {
	error
	HTTPStatus() int
}

// ErrorHandler là generic error handler: handler push lỗi bằng c.Error(err),
// middleware này log rồi trả {code, message}. Lỗi không khai báo status → 500
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := "Internal server error"

		var se StatusError
		if errors.As(err, &se) {
			status = se.HTTPStatus()
			message = se.Error()
		}

		log.Error().
			Err(err).
			Str("request_id", c.GetString(shared.ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")

		code := response.CodeInternalError
		if status < http.StatusInternalServerError {
			code = response.CodeBadRequest
		} else if status != http.StatusInternalServerError {
			code = "UPSTREAM_ERROR"
		}
		response.Error(c, status, code, message)
	}
}
