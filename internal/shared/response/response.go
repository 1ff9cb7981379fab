package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody là shape chung của mọi error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidID     = "INVALID_ID"
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Success trả data thẳng, không bọc envelope
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error ghi error body và abort chain
func Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Code: code, Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidation, message)
}

func InvalidID(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidID, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

func PayloadTooLarge(c *gin.Context, message string) {
	Error(c, http.StatusRequestEntityTooLarge, CodeTooLarge, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}
