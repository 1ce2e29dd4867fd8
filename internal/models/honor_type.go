package models

// HonorType is a named recognition category (e.g. "Employee of the Month").
// The catalog is append-only: rows are never deleted while honors reference them.
// NameKey carries the lower-cased name so uniqueness is case-insensitive and
// enforced by the storage engine rather than a check-then-insert.
type HonorType struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	NameKey     string `gorm:"uniqueIndex;not null" json:"-"`
	Description string `gorm:"type:text" json:"description"`

	Honors []Honor `gorm:"foreignKey:HonorTypeID" json:"-"`
}
