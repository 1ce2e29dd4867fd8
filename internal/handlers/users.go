package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meirshuvax/bynet-portal/internal/services"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/response"
)

// UserHandler exposes the portal user directory.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=64,username"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"max=128"`
	Avatar      string `json:"avatar" validate:"max=512"`
	IsAdmin     bool   `json:"is_admin"`
}

// Create provisions a new portal user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	if h == nil || h.users == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var payload createUserRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	user, err := h.users.Create(requestContext(c), services.CreateUserInput{
		Username:    payload.Username,
		Email:       payload.Email,
		Password:    payload.Password,
		DisplayName: payload.DisplayName,
		Avatar:      payload.Avatar,
		IsAdmin:     payload.IsAdmin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// List returns the user directory with optional pagination.
func (h *UserHandler) List(c *gin.Context) {
	if h == nil || h.users == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	users, err := h.users.List(requestContext(c), services.ListUsersOptions{
		Limit:  parseIntQuery(c, "limit", 0),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, users, len(users))
}

// Get returns a single user by id.
func (h *UserHandler) Get(c *gin.Context) {
	if h == nil || h.users == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.Param("userID"))
	if userID == "" {
		response.Error(c, apperrors.NewBadRequest("user id is required"))
		return
	}

	user, err := h.users.Get(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
