package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/shared/response"
)

// ParseUUIDParam đọc path param dạng UUID, sai format thì ghi 400 và trả false
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.InvalidID(c, "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// QueryInt đọc query int, thiếu hoặc không parse được thì trả defaultValue
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
