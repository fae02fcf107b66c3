package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	Model
	UserID   uint            `gorm:"not null;index" json:"user"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Cycle    string          `gorm:"size:20;not null" json:"cycle"`
	NextDate time.Time       `gorm:"type:date;not null" json:"next_date"`
	Logo     string          `gorm:"size:500" json:"logo"`
}

func (s Subscription) OwnerID() uint { return s.UserID }
