package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBaseModelGeneratesUUID(t *testing.T) {
	m := &BaseModel{}
	require.NoError(t, m.BeforeCreate(&gorm.DB{}))
	require.NotEmpty(t, m.ID)
}

func TestBaseModelIDsSortInCreationOrder(t *testing.T) {
	var previous string
	for i := 0; i < 50; i++ {
		m := &BaseModel{}
		require.NoError(t, m.BeforeCreate(&gorm.DB{}))
		require.Greater(t, m.ID, previous)
		previous = m.ID
	}
}

func TestBaseModelKeepsExplicitID(t *testing.T) {
	m := &BaseModel{ID: "fixed-id"}
	require.NoError(t, m.BeforeCreate(&gorm.DB{}))
	require.Equal(t, "fixed-id", m.ID)
}

func TestHonorActiveAt(t *testing.T) {
	until := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	honor := &Honor{DisplayUntil: until}

	require.True(t, honor.ActiveAt(until.Add(-time.Hour)))
	require.True(t, honor.ActiveAt(until), "boundary instant is still active")
	require.False(t, honor.ActiveAt(until.Add(time.Second)))
}

func TestChatMessageBroadcast(t *testing.T) {
	broadcast := &ChatMessage{}
	require.True(t, broadcast.IsBroadcast())

	recipient := "some-user"
	direct := &ChatMessage{RecipientID: &recipient}
	require.False(t, direct.IsBroadcast())

	require.Equal(t, "chat_messages", ChatMessage{}.TableName())
}
