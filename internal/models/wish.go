package models

// Wish is a congratulatory note attached to an honor. Wishes are append-only:
// no update or delete path exists, and honors with wishes are never removed.
type Wish struct {
	BaseModel

	HonorID    string `gorm:"type:uuid;not null;index" json:"honor_id"`
	Honor      *Honor `gorm:"foreignKey:HonorID" json:"-"`
	FromUserID string `gorm:"type:uuid;not null;index" json:"from_user_id"`
	FromUser   *User  `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`

	Message string `gorm:"type:text;not null" json:"message"`
}
