package auth

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/response"
)

type Handler struct {
	service     *Service
	frontendURL string
}

func NewHandler(service *Service, frontendURL string) *Handler {
	return &Handler{service: service, frontendURL: frontendURL}
}

// GoogleLogin handles GET /auth/google → 302 tới Google
func (h *Handler) GoogleLogin(c *gin.Context) {
	target, err := h.service.Begin(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// GoogleCallback handles GET /auth/google/callback → 302 tới FRONTEND_URL?token=...
func (h *Handler) GoogleCallback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		response.BadRequest(c, "oauth login cancelled: "+providerErr)
		return
	}

	token, err := h.service.Complete(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	target, err := withToken(h.frontendURL, token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrMissingCode):
		response.BadRequest(c, err.Error())
	case model.ToHTTPStatus(err) != http.StatusInternalServerError:
		response.Error(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
	default:
		_ = c.Error(err)
	}
}

func withToken(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
