package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/metrics"
)

// ErrHonorNotFound indicates the referenced honor does not exist.
var ErrHonorNotFound = apperrors.New("HONOR_NOT_FOUND", "Honor not found", http.StatusNotFound)

// GrantHonorInput describes a new recognition grant.
type GrantHonorInput struct {
	UserID       string
	HonorTypeID  string
	GrantedBy    string
	DisplayUntil time.Time
	Description  string
}

// HonorService maintains the append-only honor ledger. Honors are never
// deleted; expiry is derived at read time from the display window so the
// stored record can never drift from the wall clock.
type HonorService struct {
	db      *gorm.DB
	users   *UserService
	timeNow func() time.Time
}

// NewHonorService constructs an HonorService.
func NewHonorService(db *gorm.DB, users *UserService) (*HonorService, error) {
	if db == nil {
		return nil, errors.New("honor service: db is required")
	}
	if users == nil {
		return nil, errors.New("honor service: user service is required")
	}
	return &HonorService{
		db:      db,
		users:   users,
		timeNow: time.Now,
	}, nil
}

// Grant validates the recipient, type, and display window, then persists the honor.
// All validation happens before the write; nothing is persisted on failure.
func (s *HonorService) Grant(ctx context.Context, input GrantHonorInput) (*models.Honor, error) {
	ctx = ensureContext(ctx)

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, apperrors.NewBadRequest("user_id is required")
	}
	typeID := strings.TrimSpace(input.HonorTypeID)
	if typeID == "" {
		return nil, apperrors.NewBadRequest("honor_type_id is required")
	}
	grantedBy := strings.TrimSpace(input.GrantedBy)
	if grantedBy == "" {
		return nil, apperrors.NewBadRequest("issuer is required")
	}

	now := s.timeNow()
	if !input.DisplayUntil.After(now) {
		return nil, apperrors.ErrInvalidDisplayWindow
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	var honorType models.HonorType
	if err := s.db.WithContext(ctx).First(&honorType, "id = ?", typeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonorTypeNotFound
		}
		return nil, fmt.Errorf("honor service: load type: %w", err)
	}

	honor := &models.Honor{
		UserID:       userID,
		HonorTypeID:  honorType.ID,
		GrantedBy:    grantedBy,
		DisplayUntil: input.DisplayUntil,
		Description:  strings.TrimSpace(input.Description),
	}
	honor.CreatedAt = now

	if err := s.db.WithContext(ctx).Create(honor).Error; err != nil {
		return nil, fmt.Errorf("honor service: create honor: %w", err)
	}

	honor.HonorType = &honorType
	metrics.HonorsGranted.WithLabelValues(honorType.Name).Inc()
	return honor, nil
}

// Get loads a single honor with its type.
func (s *HonorService) Get(ctx context.Context, id string) (*models.Honor, error) {
	ctx = ensureContext(ctx)

	var honor models.Honor
	err := s.db.WithContext(ctx).
		Preload("HonorType").
		First(&honor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonorNotFound
		}
		return nil, fmt.Errorf("honor service: load honor: %w", err)
	}
	return &honor, nil
}

// ListActiveForUser returns the user's honors still inside their display
// window at asOf, soonest-expiring first so feeds can surface honors about to
// lapse. A zero asOf means "now".
func (s *HonorService) ListActiveForUser(ctx context.Context, userID string, asOf time.Time) ([]models.Honor, error) {
	ctx = ensureContext(ctx)

	if asOf.IsZero() {
		asOf = s.timeNow()
	}

	var honors []models.Honor
	err := s.db.WithContext(ctx).
		Preload("HonorType").
		Where("user_id = ? AND display_until >= ?", strings.TrimSpace(userID), asOf).
		Order("display_until ASC").
		Find(&honors).Error
	if err != nil {
		return nil, fmt.Errorf("honor service: list active honors: %w", err)
	}
	return honors, nil
}

// ListAllForUser returns the user's complete honor history, newest grant first.
// Expired honors stay visible here; expiry never deletes the record.
func (s *HonorService) ListAllForUser(ctx context.Context, userID string) ([]models.Honor, error) {
	ctx = ensureContext(ctx)

	var honors []models.Honor
	err := s.db.WithContext(ctx).
		Preload("HonorType").
		Where("user_id = ?", strings.TrimSpace(userID)).
		Order("created_at DESC").
		Find(&honors).Error
	if err != nil {
		return nil, fmt.Errorf("honor service: list honors: %w", err)
	}
	return honors, nil
}

// UpdateDescription edits the free-text description. Only the original issuer may do so.
func (s *HonorService) UpdateDescription(ctx context.Context, honorID, newDescription, actingUserID string) (*models.Honor, error) {
	ctx = ensureContext(ctx)

	honor, err := s.Get(ctx, honorID)
	if err != nil {
		return nil, err
	}

	if honor.GrantedBy != strings.TrimSpace(actingUserID) {
		return nil, apperrors.ErrForbidden
	}

	newDescription = strings.TrimSpace(newDescription)
	err = s.db.WithContext(ctx).
		Model(&models.Honor{}).
		Where("id = ?", honor.ID).
		Update("description", newDescription).Error
	if err != nil {
		return nil, fmt.Errorf("honor service: update description: %w", err)
	}

	honor.Description = newDescription
	return honor, nil
}
