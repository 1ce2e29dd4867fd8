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

// WishHandler exposes the congratulation board attached to each honor.
type WishHandler struct {
	wishes *services.WishService
}

// NewWishHandler constructs a WishHandler.
func NewWishHandler(wishes *services.WishService) *WishHandler {
	return &WishHandler{wishes: wishes}
}

type addWishRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// Add posts a wish on an honor's board. The author is the caller.
func (h *WishHandler) Add(c *gin.Context) {
	if h == nil || h.wishes == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	honorID := strings.TrimSpace(c.Param("honorID"))
	if honorID == "" {
		response.Error(c, apperrors.NewBadRequest("honor id is required"))
		return
	}

	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var payload addWishRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	wish, err := h.wishes.Add(requestContext(c), services.AddWishInput{
		HonorID:    honorID,
		FromUserID: userID,
		Message:    payload.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, wish)
}

// List returns every wish on an honor's board in posting order.
func (h *WishHandler) List(c *gin.Context) {
	if h == nil || h.wishes == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	honorID := strings.TrimSpace(c.Param("honorID"))
	if honorID == "" {
		response.Error(c, apperrors.NewBadRequest("honor id is required"))
		return
	}

	wishes, err := h.wishes.ListForHonor(requestContext(c), honorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, wishes, len(wishes))
}
