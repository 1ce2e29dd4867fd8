package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/services"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/response"
)

// ContentHandler manages the shared images and links shown across the portal.
type ContentHandler struct {
	contents *services.ContentService
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(contents *services.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

type createContentRequest struct {
	Kind     string         `json:"kind" validate:"required,oneof=image link"`
	Title    string         `json:"title" validate:"max=256"`
	URL      string         `json:"url" validate:"required,max=2048"`
	Metadata map[string]any `json:"metadata"`
}

// Create registers a new shared content entry. Admin only.
func (h *ContentHandler) Create(c *gin.Context) {
	if h == nil || h.contents == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var payload createContentRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	content, err := h.contents.Create(requestContext(c), services.CreateContentInput{
		Kind:      payload.Kind,
		Title:     payload.Title,
		URL:       payload.URL,
		Metadata:  payload.Metadata,
		CreatedBy: userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, content)
}

// List returns shared content, optionally filtered by kind.
func (h *ContentHandler) List(c *gin.Context) {
	if h == nil || h.contents == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	contents, err := h.contents.List(requestContext(c), c.Query("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, contents, len(contents))
}

// Delete removes a shared content entry. Admin only.
func (h *ContentHandler) Delete(c *gin.Context) {
	if h == nil || h.contents == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	contentID := strings.TrimSpace(c.Param("contentID"))
	if contentID == "" {
		response.Error(c, apperrors.NewBadRequest("content id is required"))
		return
	}

	if err := h.contents.Delete(requestContext(c), contentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
