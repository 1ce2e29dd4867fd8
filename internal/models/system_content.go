package models

import "gorm.io/datatypes"

// System content kinds.
const (
	ContentKindImage = "image"
	ContentKindLink  = "link"
)

// SystemContent is a portal-wide shared image or link managed by administrators.
type SystemContent struct {
	BaseModel

	Kind  string `gorm:"type:varchar(32);not null;index" json:"kind"`
	Title string `gorm:"type:varchar(255)" json:"title"`
	URL   string `gorm:"type:text;not null" json:"url"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedBy string `gorm:"type:uuid;not null" json:"created_by"`
}
