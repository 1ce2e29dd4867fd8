package models

// ChatMessage is a persisted portal chat message. RecipientID is nil for
// broadcast messages visible to all staff. The table name is the single
// canonical one used by both migration and any teardown path.
type ChatMessage struct {
	BaseModel

	SenderID    string  `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender      *User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	RecipientID *string `gorm:"type:uuid;index" json:"recipient_id,omitempty"`

	Body string `gorm:"type:text;not null" json:"body"`
}

// TableName pins the canonical table name.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// IsBroadcast reports whether the message targets the whole organisation.
func (m *ChatMessage) IsBroadcast() bool {
	return m.RecipientID == nil
}
