package models

import "time"

// APIToken is the server-side record of an issued bearer token. Deleting the
// row revokes the token even though its signature stays valid.
type APIToken struct {
	Model
	UserID     uint       `gorm:"not null;index" json:"user"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
