package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/database/testutil"
	"github.com/meirshuvax/bynet-portal/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}

func createTestUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()

	users, err := NewUserService(db)
	require.NoError(t, err)

	user, err := users.Create(context.Background(), CreateUserInput{
		Username: username,
		Email:    username + "@bynet.example",
		Password: "portal-password",
		IsAdmin:  admin,
	})
	require.NoError(t, err)
	return user
}

func createTestHonorType(t *testing.T, db *gorm.DB, name string) *models.HonorType {
	t.Helper()

	types, err := NewHonorTypeService(db)
	require.NoError(t, err)

	honorType, err := types.Create(context.Background(), CreateHonorTypeInput{Name: name})
	require.NoError(t, err)
	return honorType
}

// fixedClock returns a mutable clock seam for services with a timeNow field.
func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	current := start
	return &current, func() time.Time { return current }
}
