package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meirshuvax/bynet-portal/internal/models"
	apperrors "github.com/meirshuvax/bynet-portal/pkg/errors"
)

func newChatService(t *testing.T, db *gorm.DB) *ChatService {
	t.Helper()

	users, err := NewUserService(db)
	require.NoError(t, err)
	svc, err := NewChatService(db, users, nil)
	require.NoError(t, err)
	return svc
}

func TestSendDirectMessage(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	msg, err := svc.Send(context.Background(), SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: &bob.ID,
		Body:        "lunch at noon?",
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, msg.SenderID)
	require.NotNil(t, msg.RecipientID)
	require.Equal(t, bob.ID, *msg.RecipientID)
	require.False(t, msg.IsBroadcast())
}

func TestSendSanitisesBody(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	msg, err := svc.Send(context.Background(), SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: &bob.ID,
		Body:        `<script>alert("hi")</script>`,
	})
	require.NoError(t, err)
	require.NotContains(t, msg.Body, "<script>")
	require.Contains(t, msg.Body, "&lt;script&gt;")
}

func TestSendBroadcastRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	member := createTestUser(t, db, "member", false)
	admin := createTestUser(t, db, "admin", true)

	ctx := context.Background()

	_, err := svc.Send(ctx, SendMessageInput{SenderID: member.ID, Body: "hello everyone"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	msg, err := svc.Send(ctx, SendMessageInput{SenderID: admin.ID, Body: "maintenance tonight"})
	require.NoError(t, err)
	require.True(t, msg.IsBroadcast())
}

func TestSendUnknownRecipient(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	ghost := "ghost"

	_, err := svc.Send(context.Background(), SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: &ghost,
		Body:        "anyone there?",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendRejectsEmptyBody(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	_, err := svc.Send(context.Background(), SendMessageInput{
		SenderID:    alice.ID,
		RecipientID: &bob.ID,
		Body:        "  \n\t ",
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrBadRequest.Code, apperrors.FromError(err).Code)
}

func TestListConversationOrderAndDirection(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	current, clock := fixedClock(base)
	svc.timeNow = clock

	ctx := context.Background()

	_, err := svc.Send(ctx, SendMessageInput{SenderID: alice.ID, RecipientID: &bob.ID, Body: "hi bob"})
	require.NoError(t, err)
	*current = base.Add(time.Minute)
	_, err = svc.Send(ctx, SendMessageInput{SenderID: bob.ID, RecipientID: &alice.ID, Body: "hi alice"})
	require.NoError(t, err)
	*current = base.Add(2 * time.Minute)
	_, err = svc.Send(ctx, SendMessageInput{SenderID: alice.ID, RecipientID: &carol.ID, Body: "hi carol"})
	require.NoError(t, err)

	rows, err := svc.ListConversation(ctx, alice.ID, bob.ID, 0, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 2, "messages to other users stay out of the conversation")
	require.Equal(t, "hi bob", rows[0].Body)
	require.Equal(t, "hi alice", rows[1].Body)
}

func TestListConversationLimitKeepsNewest(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	current, clock := fixedClock(base)
	svc.timeNow = clock

	ctx := context.Background()
	bodies := []string{"one", "two", "three"}
	for i, body := range bodies {
		*current = base.Add(time.Duration(i) * time.Minute)
		_, err := svc.Send(ctx, SendMessageInput{SenderID: alice.ID, RecipientID: &bob.ID, Body: body})
		require.NoError(t, err)
	}

	rows, err := svc.ListConversation(ctx, alice.ID, bob.ID, 2, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "two", rows[0].Body)
	require.Equal(t, "three", rows[1].Body)
}

func TestListBroadcasts(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	admin := createTestUser(t, db, "admin", true)
	member := createTestUser(t, db, "member", false)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	current, clock := fixedClock(base)
	svc.timeNow = clock

	ctx := context.Background()
	_, err := svc.Send(ctx, SendMessageInput{SenderID: admin.ID, Body: "first notice"})
	require.NoError(t, err)
	*current = base.Add(time.Minute)
	_, err = svc.Send(ctx, SendMessageInput{SenderID: admin.ID, RecipientID: &member.ID, Body: "just for you"})
	require.NoError(t, err)
	*current = base.Add(2 * time.Minute)
	_, err = svc.Send(ctx, SendMessageInput{SenderID: admin.ID, Body: "second notice"})
	require.NoError(t, err)

	rows, err := svc.ListBroadcasts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "first notice", rows[0].Body)
	require.Equal(t, "second notice", rows[1].Body)
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(t, db)

	admin := createTestUser(t, db, "admin", true)

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	current, clock := fixedClock(base)
	svc.timeNow = clock

	ctx := context.Background()
	_, err := svc.Send(ctx, SendMessageInput{SenderID: admin.ID, Body: "ancient"})
	require.NoError(t, err)
	*current = base.Add(90 * 24 * time.Hour)
	_, err = svc.Send(ctx, SendMessageInput{SenderID: admin.ID, Body: "recent"})
	require.NoError(t, err)

	deleted, err := svc.PruneOlderThan(ctx, base.Add(30*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	var remaining []models.ChatMessage
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "recent", remaining[0].Body)
}
