package models

import "github.com/shopspring/decimal"

const DefaultGoalIcon = "💰"

// Goal is the canonical savings goal. current_amount is not bounded by
// target_amount.
type Goal struct {
	Model
	UserID        uint            `gorm:"not null;index" json:"user"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"current_amount"`
	Icon          string          `gorm:"size:10;not null;default:'💰'" json:"icon"`
}

func (g Goal) OwnerID() uint { return g.UserID }

// LegacySavingsGoal maps the table written by the first revision of the
// schema. It is only read by the migration that moves its rows into goals.
type LegacySavingsGoal struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"column:user_id"`
	Name          string          `gorm:"column:name;size:200"`
	CurrentAmount decimal.Decimal `gorm:"column:current_amount;type:decimal(10,2)"`
	TargetAmount  decimal.Decimal `gorm:"column:target_amount;type:decimal(10,2)"`
	Icon          string          `gorm:"column:icon;size:10"`
}

func (LegacySavingsGoal) TableName() string {
	return "api_savingsgoal"
}
