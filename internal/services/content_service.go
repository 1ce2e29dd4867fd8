package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
)

// CreateContentInput describes a portal-wide image or link entry.
type CreateContentInput struct {
	Kind      string
	Title     string
	URL       string
	Metadata  map[string]any
	CreatedBy string
}

// ContentService manages shared system content shown across the portal.
type ContentService struct {
	db *gorm.DB
}

// NewContentService constructs a ContentService.
func NewContentService(db *gorm.DB) (*ContentService, error) {
	if db == nil {
		return nil, errors.New("content service: db is required")
	}
	return &ContentService{db: db}, nil
}

// Create persists a new shared content entry.
func (s *ContentService) Create(ctx context.Context, input CreateContentInput) (*models.SystemContent, error) {
	ctx = ensureContext(ctx)

	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind != models.ContentKindImage && kind != models.ContentKindLink {
		return nil, apperrors.NewBadRequest("kind must be image or link")
	}
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, apperrors.NewBadRequest("url is required")
	}
	createdBy := strings.TrimSpace(input.CreatedBy)
	if createdBy == "" {
		return nil, apperrors.NewBadRequest("creator is required")
	}

	content := &models.SystemContent{
		Kind:      kind,
		Title:     strings.TrimSpace(input.Title),
		URL:       url,
		CreatedBy: createdBy,
	}

	if input.Metadata != nil {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("content service: marshal metadata: %w", err)
		}
		content.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(content).Error; err != nil {
		return nil, fmt.Errorf("content service: create content: %w", err)
	}

	return content, nil
}

// List returns shared content, optionally filtered to a single kind, newest first.
func (s *ContentService) List(ctx context.Context, kind string) ([]models.SystemContent, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.SystemContent{}).Order("created_at DESC")

	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var rows []models.SystemContent
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("content service: list content: %w", err)
	}
	return rows, nil
}

// Delete removes a shared content entry.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).Delete(&models.SystemContent{}, "id = ?", strings.TrimSpace(id))
	if result.Error != nil {
		return fmt.Errorf("content service: delete content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
