package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/meirshuvax/bynet-portal/internal/auth"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/services"
)

func TestAuthHandler_LoginAndMe(t *testing.T) {
	g := gin.New()

	db := newHandlerTestDB(t)
	users, err := services.NewUserService(db)
	require.NoError(t, err)
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret:         "handler-test-secret",
		Issuer:         "bynet-portal-test",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)
	authSvc, err := services.NewAuthService(db, users, jwtSvc)
	require.NoError(t, err)

	user := createTestUser(t, db, "alice", false)

	handler := NewAuthHandler(authSvc, users)
	g.POST("/api/auth/login", handler.Login)
	g.GET("/api/auth/me", middleware.Auth(jwtSvc), handler.Me)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "portal-password"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, user.ID, login.User.ID)

	meReq, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+login.Token)
	meRec := httptest.NewRecorder()
	g.ServeHTTP(meRec, meReq)
	require.Equal(t, http.StatusOK, meRec.Code, meRec.Body.String())

	var meResp apiEnvelope
	require.NoError(t, json.Unmarshal(meRec.Body.Bytes(), &meResp))
	var profile struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(meResp.Data, &profile))
	require.Equal(t, "alice", profile.Username)
}

func TestAuthHandler_LoginRejectsBadPassword(t *testing.T) {
	g := gin.New()

	db := newHandlerTestDB(t)
	users, err := services.NewUserService(db)
	require.NoError(t, err)
	jwtSvc, err := iauth.NewJWTService(iauth.JWTConfig{Secret: "handler-test-secret"})
	require.NoError(t, err)
	authSvc, err := services.NewAuthService(db, users, jwtSvc)
	require.NoError(t, err)

	createTestUser(t, db, "alice", false)

	handler := NewAuthHandler(authSvc, users)
	g.POST("/api/auth/login", handler.Login)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}
