package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/internal/services"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/response"
)

// HonorHandler exposes the recognition ledger: granting honors, reading
// them back, and listing a user's active board or full history.
type HonorHandler struct {
	honors *services.HonorService
}

// NewHonorHandler constructs a HonorHandler.
func NewHonorHandler(honors *services.HonorService) *HonorHandler {
	return &HonorHandler{honors: honors}
}

type grantHonorRequest struct {
	UserID       string    `json:"user_id" validate:"required"`
	HonorTypeID  string    `json:"honor_type_id" validate:"required"`
	DisplayUntil time.Time `json:"display_until" validate:"required"`
	Description  string    `json:"description" validate:"max=2048"`
}

// Grant awards an honor to a user. Admin only; the issuer is the caller.
func (h *HonorHandler) Grant(c *gin.Context) {
	if h == nil || h.honors == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	grantedBy := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if grantedBy == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var payload grantHonorRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	honor, err := h.honors.Grant(requestContext(c), services.GrantHonorInput{
		UserID:       payload.UserID,
		HonorTypeID:  payload.HonorTypeID,
		GrantedBy:    grantedBy,
		DisplayUntil: payload.DisplayUntil,
		Description:  payload.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, honor)
}

// Get returns a single honor with its type preloaded.
func (h *HonorHandler) Get(c *gin.Context) {
	if h == nil || h.honors == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	honorID := strings.TrimSpace(c.Param("honorID"))
	if honorID == "" {
		response.Error(c, apperrors.NewBadRequest("honor id is required"))
		return
	}

	honor, err := h.honors.Get(requestContext(c), honorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, honor)
}

// ListForUser returns a user's honors. scope=active (default) returns honors
// whose display window is still open, soonest expiring first; scope=all
// returns the full history, newest first.
func (h *HonorHandler) ListForUser(c *gin.Context) {
	if h == nil || h.honors == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.Param("userID"))
	if userID == "" {
		response.Error(c, apperrors.NewBadRequest("user id is required"))
		return
	}

	scope := strings.ToLower(strings.TrimSpace(c.DefaultQuery("scope", "active")))

	var (
		honors []models.Honor
		err    error
	)
	switch scope {
	case "active":
		var asOf time.Time
		if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
			parsed, parseErr := time.Parse(time.RFC3339, raw)
			if parseErr != nil {
				response.Error(c, apperrors.NewBadRequest("as_of must be an RFC 3339 timestamp"))
				return
			}
			asOf = parsed
		}
		honors, err = h.honors.ListActiveForUser(requestContext(c), userID, asOf)
	case "all":
		honors, err = h.honors.ListAllForUser(requestContext(c), userID)
	default:
		response.Error(c, apperrors.NewBadRequest("scope must be active or all"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, honors, len(honors))
}

type updateHonorDescriptionRequest struct {
	Description string `json:"description" validate:"max=2048"`
}

// UpdateDescription amends the free-text note on an honor. Only the issuer may do so.
func (h *HonorHandler) UpdateDescription(c *gin.Context) {
	if h == nil || h.honors == nil {
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

	var payload updateHonorDescriptionRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	honor, err := h.honors.UpdateDescription(requestContext(c), honorID, payload.Description, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, honor)
}
