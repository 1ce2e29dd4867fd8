package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	iauth "github.com/meirshuvax/bynet-portal/internal/auth"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/realtime"
	"github.com/meirshuvax/bynet-portal/internal/services"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/response"
)

// ChatHandler exposes the portal chat: direct messages, organisation-wide
// broadcasts, and the realtime WebSocket stream.
type ChatHandler struct {
	chats *services.ChatService
	hub   *realtime.Hub
	jwt   *iauth.JWTService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chats *services.ChatService, hub *realtime.Hub, jwt *iauth.JWTService) *ChatHandler {
	return &ChatHandler{chats: chats, hub: hub, jwt: jwt}
}

type sendMessageRequest struct {
	RecipientID *string `json:"recipient_id"`
	Body        string  `json:"body" validate:"required,min=1,max=4000"`
}

// Send posts a chat message from the caller. Omitting recipient_id sends an
// organisation-wide broadcast, which only administrators may do.
func (h *ChatHandler) Send(c *gin.Context) {
	if h == nil || h.chats == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var payload sendMessageRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	message, err := h.chats.Send(requestContext(c), services.SendMessageInput{
		SenderID:    userID,
		RecipientID: payload.RecipientID,
		Body:        payload.Body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, message)
}

// ListConversation returns the direct messages between the caller and the
// peer named in the path, oldest first.
func (h *ChatHandler) ListConversation(c *gin.Context) {
	if h == nil || h.chats == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	userID := strings.TrimSpace(c.GetString(middleware.CtxUserIDKey))
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	peerID := strings.TrimSpace(c.Param("userID"))
	if peerID == "" {
		response.Error(c, apperrors.NewBadRequest("peer user id is required"))
		return
	}

	var before time.Time
	if raw := strings.TrimSpace(c.Query("before")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, apperrors.NewBadRequest("before must be an RFC 3339 timestamp"))
			return
		}
		before = parsed
	}

	messages, err := h.chats.ListConversation(requestContext(c), userID, peerID, parseIntQuery(c, "limit", 0), before)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, messages, len(messages))
}

// ListBroadcasts returns recent organisation-wide messages, oldest first.
func (h *ChatHandler) ListBroadcasts(c *gin.Context) {
	if h == nil || h.chats == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	messages, err := h.chats.ListBroadcasts(requestContext(c), parseIntQuery(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, messages, len(messages))
}

// Stream upgrades the request to a WebSocket connection on the realtime hub.
// Browsers cannot set headers on WebSocket upgrades, so the access token is
// accepted from the query string as well as the Authorization header.
func (h *ChatHandler) Stream(c *gin.Context) {
	if h == nil || h.hub == nil || h.jwt == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authz := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			token = strings.TrimSpace(authz[7:])
		}
	}
	if token == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	h.hub.Serve(userID, c.Writer, c.Request)
}
