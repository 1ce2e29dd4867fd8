package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
)

func TestCreateContentWithMetadata(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewContentService(db)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)

	content, err := svc.Create(context.Background(), CreateContentInput{
		Kind:      "Image",
		Title:     "Summer party",
		URL:       "https://cdn.bynet.example/party.jpg",
		Metadata:  map[string]any{"width": 1920, "alt": "team photo"},
		CreatedBy: admin.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.ContentKindImage, content.Kind)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(content.Metadata, &meta))
	require.Equal(t, "team photo", meta["alt"])
}

func TestCreateContentValidation(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewContentService(db)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)
	ctx := context.Background()

	_, err = svc.Create(ctx, CreateContentInput{Kind: "video", URL: "https://x", CreatedBy: admin.ID})
	require.Equal(t, apperrors.ErrBadRequest.Code, apperrors.FromError(err).Code)

	_, err = svc.Create(ctx, CreateContentInput{Kind: "link", CreatedBy: admin.ID})
	require.Equal(t, apperrors.ErrBadRequest.Code, apperrors.FromError(err).Code)

	_, err = svc.Create(ctx, CreateContentInput{Kind: "link", URL: "https://x"})
	require.Equal(t, apperrors.ErrBadRequest.Code, apperrors.FromError(err).Code)
}

func TestListContentFilteredByKind(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewContentService(db)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)
	ctx := context.Background()

	_, err = svc.Create(ctx, CreateContentInput{Kind: "image", URL: "https://cdn/a.jpg", CreatedBy: admin.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateContentInput{Kind: "link", URL: "https://intranet/hr", CreatedBy: admin.ID})
	require.NoError(t, err)

	links, err := svc.List(ctx, "link")
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, models.ContentKindLink, links[0].Kind)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDeleteContent(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewContentService(db)
	require.NoError(t, err)

	admin := createTestUser(t, db, "admin", true)
	ctx := context.Background()

	content, err := svc.Create(ctx, CreateContentInput{Kind: "link", URL: "https://intranet/hr", CreatedBy: admin.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, content.ID))
	require.ErrorIs(t, svc.Delete(ctx, content.ID), apperrors.ErrNotFound)
}
