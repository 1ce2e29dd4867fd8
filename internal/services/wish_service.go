package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/metrics"
)

const maxWishMessageLength = 1000

// AddWishInput carries the payload required to post a wish.
type AddWishInput struct {
	HonorID    string
	FromUserID string
	Message    string
}

// WishService maintains the append-only wish board attached to honors.
// Wishes can be posted while the parent honor is active and for a grace
// period after its display window closes; a grace of zero disables the
// cutoff and accepts wishes indefinitely.
type WishService struct {
	db          *gorm.DB
	users       *UserService
	gracePeriod time.Duration
	timeNow     func() time.Time
}

// NewWishService constructs a WishService with the supplied grace period.
func NewWishService(db *gorm.DB, users *UserService, gracePeriod time.Duration) (*WishService, error) {
	if db == nil {
		return nil, errors.New("wish service: db is required")
	}
	if users == nil {
		return nil, errors.New("wish service: user service is required")
	}
	if gracePeriod < 0 {
		return nil, errors.New("wish service: grace period must not be negative")
	}
	return &WishService{
		db:          db,
		users:       users,
		gracePeriod: gracePeriod,
		timeNow:     time.Now,
	}, nil
}

// Add validates and persists a wish. All checks run before the write, so a
// failed call leaves no row behind.
func (s *WishService) Add(ctx context.Context, input AddWishInput) (*models.Wish, error) {
	ctx = ensureContext(ctx)

	honorID := strings.TrimSpace(input.HonorID)
	if honorID == "" {
		return nil, apperrors.NewBadRequest("honor_id is required")
	}
	fromUserID := strings.TrimSpace(input.FromUserID)
	if fromUserID == "" {
		return nil, apperrors.NewBadRequest("from_user_id is required")
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewBadRequest("message is required")
	}
	if utf8.RuneCountInString(message) > maxWishMessageLength {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("message must be at most %d characters", maxWishMessageLength))
	}

	var honor models.Honor
	if err := s.db.WithContext(ctx).First(&honor, "id = ?", honorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonorNotFound
		}
		return nil, fmt.Errorf("wish service: load honor: %w", err)
	}

	if s.gracePeriod > 0 {
		cutoff := honor.DisplayUntil.Add(s.gracePeriod)
		if s.timeNow().After(cutoff) {
			return nil, apperrors.ErrHonorExpired
		}
	}

	exists, err := s.users.Exists(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	wish := &models.Wish{
		HonorID:    honor.ID,
		FromUserID: fromUserID,
		Message:    message,
	}
	wish.CreatedAt = s.timeNow()

	if err := s.db.WithContext(ctx).Create(wish).Error; err != nil {
		return nil, fmt.Errorf("wish service: create wish: %w", err)
	}

	metrics.WishesPosted.Inc()
	return wish, nil
}

// ListForHonor returns the honor's wishes in chronological conversation order.
func (s *WishService) ListForHonor(ctx context.Context, honorID string) ([]models.Wish, error) {
	ctx = ensureContext(ctx)

	honorID = strings.TrimSpace(honorID)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Honor{}).Where("id = ?", honorID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("wish service: check honor: %w", err)
	}
	if count == 0 {
		return nil, ErrHonorNotFound
	}

	var wishes []models.Wish
	err := s.db.WithContext(ctx).
		Preload("FromUser").
		Where("honor_id = ?", honorID).
		Order("created_at ASC, id ASC").
		Find(&wishes).Error
	if err != nil {
		return nil, fmt.Errorf("wish service: list wishes: %w", err)
	}
	return wishes, nil
}
