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

// AuthHandler exposes credential login and the current-user lookup.
type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges a username and password for a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	if h == nil || h.auth == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var payload loginRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.auth.Login(requestContext(c), payload.Username, payload.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	if h == nil || h.users == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.users.Get(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
