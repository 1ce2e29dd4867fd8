package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/internal/services"
)

func newChatHandlerFixture(t *testing.T) (*gin.Engine, *services.ChatService, *models.User, *models.User, *models.User) {
	t.Helper()

	g := gin.New()
	db := newHandlerTestDB(t)

	users, err := services.NewUserService(db)
	require.NoError(t, err)
	chatSvc, err := services.NewChatService(db, users, nil)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	return g, chatSvc, admin, alice, bob
}

func TestChatHandler_DirectMessageFlow(t *testing.T) {
	g, chatSvc, _, alice, bob := newChatHandlerFixture(t)

	handler := NewChatHandler(chatSvc, nil, nil)
	g.POST("/api/chat/messages", actAs(alice), handler.Send)
	g.GET("/api/chat/conversations/:userID", actAs(alice), handler.ListConversation)

	body, _ := json.Marshal(map[string]any{"recipient_id": bob.ID, "body": "lunch?"})
	req, _ := http.NewRequest(http.MethodPost, "/api/chat/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	listReq, _ := http.NewRequest(http.MethodGet, "/api/chat/conversations/"+bob.ID, nil)
	listRec := httptest.NewRecorder()
	g.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code, listRec.Body.String())

	var resp apiEnvelope
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	var messages []models.ChatMessage
	require.NoError(t, json.Unmarshal(resp.Data, &messages))
	require.Len(t, messages, 1)
	require.Equal(t, "lunch?", messages[0].Body)
	require.Equal(t, alice.ID, messages[0].SenderID)
}

func TestChatHandler_BroadcastRequiresAdmin(t *testing.T) {
	g, chatSvc, admin, alice, _ := newChatHandlerFixture(t)

	handler := NewChatHandler(chatSvc, nil, nil)
	g.POST("/api/chat/messages", actAs(alice), handler.Send)
	g.POST("/api/chat/broadcasts", actAs(admin), handler.Send)
	g.GET("/api/chat/broadcasts", actAs(alice), handler.ListBroadcasts)

	body, _ := json.Marshal(map[string]any{"body": "all hands at 4pm"})

	req, _ := http.NewRequest(http.MethodPost, "/api/chat/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	req, _ = http.NewRequest(http.MethodPost, "/api/chat/broadcasts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	listReq, _ := http.NewRequest(http.MethodGet, "/api/chat/broadcasts", nil)
	listRec := httptest.NewRecorder()
	g.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code, listRec.Body.String())

	var resp apiEnvelope
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	var messages []models.ChatMessage
	require.NoError(t, json.Unmarshal(resp.Data, &messages))
	require.Len(t, messages, 1)
	require.Nil(t, messages[0].RecipientID)
}
