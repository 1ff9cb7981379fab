package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/blogpost/service"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

const coverField = "cover"

var errInvalidBody = errors.New("invalid request payload")

type BlogPostHandler struct {
	service        service.Service
	maxUploadBytes int64
}

func NewBlogPostHandler(service service.Service, maxUploadBytes int64) *BlogPostHandler {
	return &BlogPostHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// ========================================
// PUBLIC
// ========================================

// List handles GET /blogPosts?page=&limit=
func (h *BlogPostHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ListByAuthor handles GET /authors/:id/blogPosts
func (h *BlogPostHandler) ListByAuthor(c *gin.Context) {
	authorID, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.ListByAuthor(c.Request.Context(), authorID.String(), pageFromQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Get handles GET /blogPosts/:id
func (h *BlogPostHandler) Get(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ListComments handles GET /blogPosts/:id/comments
func (h *BlogPostHandler) ListComments(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// GetComment handles GET /blogPosts/:id/comments/:commentId
func (h *BlogPostHandler) GetComment(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := utils.ParseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), id, commentID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// ========================================
// PROTECTED
// ========================================

// Create handles POST /blogPosts (multipart, file "cover" bắt buộc)
func (h *BlogPostHandler) Create(c *gin.Context) {
	authorID, ok := callerID(c)
	if !ok {
		return
	}

	cover, err := utils.FormFile(c, coverField, h.maxUploadBytes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer cover.Close()

	var req model.CreateBlogPostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, errInvalidBody.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), authorID, req, cover)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post)
}

// Update handles PUT /blogPosts/:id (partial)
func (h *BlogPostHandler) Update(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBlogPostRequest
	if err := decodeStrict(c, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Delete handles DELETE /blogPosts/:id
func (h *BlogPostHandler) Delete(c *gin.Context) {
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

// UpdateCover handles PATCH /blogPosts/:id/cover
func (h *BlogPostHandler) UpdateCover(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	cover, err := utils.FormFile(c, coverField, h.maxUploadBytes)
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer cover.Close()

	post, err := h.service.UpdateCover(c.Request.Context(), id, cover)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// AddComment handles POST /blogPosts/:id/comments → 201 + toàn bộ list comment
func (h *BlogPostHandler) AddComment(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	authorID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.CommentRequest
	if err := decodeStrict(c, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comments, err := h.service.AddComment(c.Request.Context(), id, authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comments)
}

// UpdateComment handles PUT /blogPosts/:id/comments/:commentId
func (h *BlogPostHandler) UpdateComment(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := utils.ParseUUIDParam(c, "commentId")
	if !ok {
		return
	}
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req model.CommentRequest
	if err := decodeStrict(c, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), id, commentID, caller, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// DeleteComment handles DELETE /blogPosts/:id/comments/:commentId
func (h *BlogPostHandler) DeleteComment(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := utils.ParseUUIDParam(c, "commentId")
	if !ok {
		return
	}
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), id, commentID, caller); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// HELPERS
// ========================================

func (h *BlogPostHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs.Error())
	case errors.Is(err, model.ErrBlogPostNotFound), errors.Is(err, model.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, utils.ErrFileTooLarge):
		response.PayloadTooLarge(c, err.Error())
	case errors.Is(err, model.ErrCoverRequired),
		errors.Is(err, model.ErrEmptyUpdate),
		errors.Is(err, utils.ErrFileMissing),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
	}
}

func callerID(c *gin.Context) (string, bool) {
	id, ok := middleware.AuthorIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "token missing")
	}
	return id, ok
}

func pageFromQuery(c *gin.Context) model.Page {
	return model.NewPage(
		utils.QueryInt(c, "page", model.DefaultPage),
		utils.QueryInt(c, "limit", model.DefaultLimit),
	)
}

// decodeStrict - field không khai báo → 400
func decodeStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errInvalidBody
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	// chỉ nhận đúng một JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON body", errInvalidBody)
	}
	return nil
}
