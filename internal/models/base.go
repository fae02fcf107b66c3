package models

import "time"

// Model is embedded by every persisted entity. Rows are hard-deleted so that
// ownership cascades and the username unique index behave like the store's
// own constraints rather than a soft-delete filter.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owned records belong to exactly one User.
type Owned interface {
	OwnerID() uint
}
