package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/internal/services"
)

func TestWishHandler_AddAndList(t *testing.T) {
	g := gin.New()

	db := newHandlerTestDB(t)
	users, err := services.NewUserService(db)
	require.NoError(t, err)
	honorSvc, err := services.NewHonorService(db, users)
	require.NoError(t, err)
	typeSvc, err := services.NewHonorTypeService(db)
	require.NoError(t, err)
	wishSvc, err := services.NewWishService(db, users, 0)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)
	recipient := createTestUser(t, db, "alice", false)
	colleague := createTestUser(t, db, "bob", false)

	honorType, err := typeSvc.Create(context.Background(), services.CreateHonorTypeInput{Name: "Star Performer"})
	require.NoError(t, err)
	honor, err := honorSvc.Grant(context.Background(), services.GrantHonorInput{
		UserID:       recipient.ID,
		HonorTypeID:  honorType.ID,
		GrantedBy:    admin.ID,
		DisplayUntil: time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	handler := NewWishHandler(wishSvc)
	g.POST("/api/honors/:honorID/wishes", actAs(colleague), handler.Add)
	g.GET("/api/honors/:honorID/wishes", actAs(colleague), handler.List)

	body, _ := json.Marshal(map[string]string{"message": "Congrats!"})
	req, _ := http.NewRequest(http.MethodPost, "/api/honors/"+honor.ID+"/wishes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	var wish models.Wish
	require.NoError(t, json.Unmarshal(created.Data, &wish))
	require.Equal(t, colleague.ID, wish.FromUserID)

	listReq, _ := http.NewRequest(http.MethodGet, "/api/honors/"+honor.ID+"/wishes", nil)
	listRec := httptest.NewRecorder()
	g.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code, listRec.Body.String())

	var listResp apiEnvelope
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listResp))
	var wishes []models.Wish
	require.NoError(t, json.Unmarshal(listResp.Data, &wishes))
	require.Len(t, wishes, 1)
	require.Equal(t, "Congrats!", wishes[0].Message)
}

func TestWishHandler_UnknownHonor(t *testing.T) {
	g := gin.New()

	db := newHandlerTestDB(t)
	users, err := services.NewUserService(db)
	require.NoError(t, err)
	wishSvc, err := services.NewWishService(db, users, 0)
	require.NoError(t, err)

	colleague := createTestUser(t, db, "bob", false)

	handler := NewWishHandler(wishSvc)
	g.POST("/api/honors/:honorID/wishes", actAs(colleague), handler.Add)

	body, _ := json.Marshal(map[string]string{"message": "Congrats!"})
	req, _ := http.NewRequest(http.MethodPost, "/api/honors/missing/wishes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}
