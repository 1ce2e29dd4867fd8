package models

import "time"

// Honor records that a user received a recognition of a given type, visible in
// feeds until DisplayUntil passes. Expiry is a read-time predicate; rows are
// kept for the historical record and never deleted.
type Honor struct {
	BaseModel

	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	HonorTypeID string    `gorm:"type:uuid;not null;index" json:"honor_type_id"`
	HonorType   *HonorType `gorm:"foreignKey:HonorTypeID" json:"honor_type,omitempty"`

	// GrantedBy is the issuer; only the issuer may edit the description.
	GrantedBy string `gorm:"type:uuid;not null" json:"granted_by"`

	DisplayUntil time.Time `gorm:"not null;index" json:"display_until"`
	Description  string    `gorm:"type:text" json:"description"`

	Wishes []Wish `gorm:"foreignKey:HonorID" json:"wishes,omitempty"`
}

// ActiveAt reports whether the honor is still visible in feeds at the supplied instant.
func (h *Honor) ActiveAt(at time.Time) bool {
	return !h.DisplayUntil.Before(at)
}
