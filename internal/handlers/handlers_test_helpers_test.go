package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/database/testutil"
	"github.com/meirshuvax/bynet-portal/internal/middleware"
	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/internal/services"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}

func createTestUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()

	users, err := services.NewUserService(db)
	require.NoError(t, err)

	user, err := users.Create(context.Background(), services.CreateUserInput{
		Username: username,
		Email:    username + "@bynet.example",
		Password: "portal-password",
		IsAdmin:  admin,
	})
	require.NoError(t, err)
	return user
}

// actAs mimics the auth middleware for handler tests.
func actAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, user.ID)
		c.Set(middleware.CtxIsAdminKey, user.IsAdmin)
		c.Next()
	}
}
