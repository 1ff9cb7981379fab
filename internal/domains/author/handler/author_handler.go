package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/service"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

const avatarField = "avatar"

type AuthorHandler struct {
	service        service.Service
	maxUploadBytes int64
}

func NewAuthorHandler(service service.Service, maxUploadBytes int64) *AuthorHandler {
	return &AuthorHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	author, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, author.ToResponse())
}

// Login handles POST /authors/login
func (h *AuthorHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// List handles GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(authors))
}

// Get handles GET /authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// Update handles PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// Delete handles DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateAvatar handles PATCH /authors/:id/avatar (multipart field "avatar")
func (h *AuthorHandler) UpdateAvatar(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, err := utils.FormFile(c, avatarField, h.maxUploadBytes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer file.Close()

	author, err := h.service.UpdateAvatar(c.Request.Context(), id, file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// Me handles GET /me (protected)
func (h *AuthorHandler) Me(c *gin.Context) {
	rawID, ok := middleware.AuthorIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "token missing")
		return
	}

	// token hợp lệ nhưng author đã bị xóa → 404
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.NotFound(c, model.ErrAuthorNotFound.Error())
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// handleError map domain error → HTTP response, lỗi lạ đẩy cho ErrorHandler middleware
func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs.Error())
	case errors.Is(err, utils.ErrFileTooLarge):
		response.PayloadTooLarge(c, err.Error())
	case errors.Is(err, utils.ErrFileMissing),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(c, err.Error())
	case model.ToHTTPStatus(err) != http.StatusInternalServerError:
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
	default:
		_ = c.Error(err)
	}
}
