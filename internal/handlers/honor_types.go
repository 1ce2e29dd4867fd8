package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/services"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/response"
)

// HonorTypeHandler exposes the recognition category catalog.
type HonorTypeHandler struct {
	types *services.HonorTypeService
}

// NewHonorTypeHandler constructs a HonorTypeHandler.
func NewHonorTypeHandler(types *services.HonorTypeService) *HonorTypeHandler {
	return &HonorTypeHandler{types: types}
}

type createHonorTypeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=128"`
	Description string `json:"description" validate:"max=1024"`
}

// Create registers a new honor type. Admin only.
func (h *HonorTypeHandler) Create(c *gin.Context) {
	if h == nil || h.types == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var payload createHonorTypeRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	honorType, err := h.types.Create(requestContext(c), services.CreateHonorTypeInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, honorType)
}

// List returns every honor type in creation order.
func (h *HonorTypeHandler) List(c *gin.Context) {
	if h == nil || h.types == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	types, err := h.types.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, types, len(types))
}

// Get returns a single honor type by id.
func (h *HonorTypeHandler) Get(c *gin.Context) {
	if h == nil || h.types == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	typeID := strings.TrimSpace(c.Param("typeID"))
	if typeID == "" {
		response.Error(c, apperrors.NewBadRequest("honor type id is required"))
		return
	}

	honorType, err := h.types.Get(requestContext(c), typeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, honorType)
}
