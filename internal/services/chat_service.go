package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	"github.com/meirshuvax/bynet-portal/internal/realtime"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
	"github.com/meirshuvax/bynet-portal/pkg/metrics"
)

const maxChatMessageLength = 4000

// SendMessageInput carries the payload required to post a chat message.
// A nil RecipientID means the message is broadcast to the whole organisation.
type SendMessageInput struct {
	SenderID    string
	RecipientID *string
	Body        string
}

// ChatService persists portal chat messages and relays them through the realtime hub.
// The database row is the source of truth; hub delivery is best effort.
type ChatService struct {
	db      *gorm.DB
	users   *UserService
	hub     *realtime.Hub
	timeNow func() time.Time
}

// NewChatService constructs a ChatService. The hub may be nil in contexts
// without realtime delivery (maintenance jobs, tests).
func NewChatService(db *gorm.DB, users *UserService, hub *realtime.Hub) (*ChatService, error) {
	if db == nil {
		return nil, errors.New("chat service: db is required")
	}
	if users == nil {
		return nil, errors.New("chat service: user service is required")
	}
	return &ChatService{
		db:      db,
		users:   users,
		hub:     hub,
		timeNow: time.Now,
	}, nil
}

// Send sanitises, persists, and fans out a chat message.
// Broadcast messages are restricted to administrators.
func (s *ChatService) Send(ctx context.Context, input SendMessageInput) (*models.ChatMessage, error) {
	ctx = ensureContext(ctx)

	senderID := strings.TrimSpace(input.SenderID)
	if senderID == "" {
		return nil, apperrors.NewBadRequest("sender is required")
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apperrors.NewBadRequest("message body is required")
	}
	if utf8.RuneCountInString(body) > maxChatMessageLength {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("message body must be at most %d characters", maxChatMessageLength))
	}

	sender, err := s.users.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}

	var recipientID *string
	if input.RecipientID != nil && strings.TrimSpace(*input.RecipientID) != "" {
		trimmed := strings.TrimSpace(*input.RecipientID)
		exists, err := s.users.Exists(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUserNotFound
		}
		recipientID = &trimmed
	} else if !sender.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	message := &models.ChatMessage{
		SenderID:    sender.ID,
		RecipientID: recipientID,
		Body:        html.EscapeString(body),
	}
	message.CreatedAt = s.timeNow()

	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("chat service: create message: %w", err)
	}

	s.deliver(message)
	return message, nil
}

// ListConversation returns the direct messages exchanged between two users in
// chronological order, at most limit entries ending before the supplied time.
func (s *ChatService) ListConversation(ctx context.Context, userA, userB string, limit int, before time.Time) ([]models.ChatMessage, error) {
	ctx = ensureContext(ctx)

	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, apperrors.NewBadRequest("both conversation participants are required")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA,
		).
		Order("created_at DESC").
		Limit(limit)

	if !before.IsZero() {
		query = query.Where("created_at < ?", before)
	}

	var rows []models.ChatMessage
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("chat service: list conversation: %w", err)
	}

	reverseMessages(rows)
	return rows, nil
}

// ListBroadcasts returns organisation-wide messages in chronological order.
func (s *ChatService) ListBroadcasts(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	ctx = ensureContext(ctx)

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("recipient_id IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("chat service: list broadcasts: %w", err)
	}

	reverseMessages(rows)
	return rows, nil
}

// PruneOlderThan removes chat messages created before the cutoff and reports
// how many rows were deleted. Used by the retention maintenance job.
func (s *ChatService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.ChatMessage{})
	if result.Error != nil {
		return 0, fmt.Errorf("chat service: prune messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *ChatService) deliver(message *models.ChatMessage) {
	if message.RecipientID == nil {
		metrics.ChatMessages.WithLabelValues("broadcast").Inc()
	} else {
		metrics.ChatMessages.WithLabelValues("direct").Inc()
	}

	if s.hub == nil {
		return
	}

	event := realtime.Event{Event: "chat.message", Data: message}
	if message.RecipientID == nil {
		s.hub.Broadcast(event)
		return
	}
	s.hub.SendToUser(*message.RecipientID, event)
	s.hub.SendToUser(message.SenderID, event)
}

func reverseMessages(rows []models.ChatMessage) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
