package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
)

// ErrHonorTypeNotFound indicates the referenced honor type does not exist.
var ErrHonorTypeNotFound = apperrors.New("HONOR_TYPE_NOT_FOUND", "Honor type not found", http.StatusNotFound)

// CreateHonorTypeInput describes a new recognition category.
type CreateHonorTypeInput struct {
	Name        string
	Description string
}

// HonorTypeService maintains the append-only catalog of recognition categories.
// Types are never deleted: honors keep referencing them for the historical record.
type HonorTypeService struct {
	db *gorm.DB
}

// NewHonorTypeService constructs an HonorTypeService.
func NewHonorTypeService(db *gorm.DB) (*HonorTypeService, error) {
	if db == nil {
		return nil, errors.New("honor type service: db is required")
	}
	return &HonorTypeService{db: db}, nil
}

// Create registers a new honor type. Name uniqueness is case-insensitive and
// enforced by the unique index on the name key, so concurrent creates cannot
// race past an application-level check.
func (s *HonorTypeService) Create(ctx context.Context, input CreateHonorTypeInput) (*models.HonorType, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	honorType := &models.HonorType{
		Name:        name,
		NameKey:     strings.ToLower(name),
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.db.WithContext(ctx).Create(honorType).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateTypeName
		}
		return nil, fmt.Errorf("honor type service: create type: %w", err)
	}

	return honorType, nil
}

// Get loads a single honor type by ID.
func (s *HonorTypeService) Get(ctx context.Context, id string) (*models.HonorType, error) {
	ctx = ensureContext(ctx)

	var honorType models.HonorType
	if err := s.db.WithContext(ctx).First(&honorType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonorTypeNotFound
		}
		return nil, fmt.Errorf("honor type service: load type: %w", err)
	}
	return &honorType, nil
}

// List returns the full catalog in creation order.
func (s *HonorTypeService) List(ctx context.Context) ([]models.HonorType, error) {
	ctx = ensureContext(ctx)

	var types []models.HonorType
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("honor type service: list types: %w", err)
	}
	return types, nil
}
