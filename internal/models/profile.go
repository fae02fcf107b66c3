package models

import "github.com/shopspring/decimal"

const (
	DefaultCurrency    = "USD"
	DefaultLevel       = 1
	DefaultNextLevelXP = 1000
)

// Profile carries the per-user settings and gamification counters. The
// counters are stored as clients send them; nothing here computes them.
type Profile struct {
	Model
	UserID      uint            `gorm:"uniqueIndex;not null" json:"user"`
	Phone       string          `gorm:"size:20" json:"phone"`
	Country     string          `gorm:"size:100" json:"country"`
	Currency    string          `gorm:"size:10;not null;default:USD" json:"currency"`
	Level       int             `gorm:"not null" json:"level"`
	XP          int             `gorm:"column:xp;not null;default:0" json:"xp"`
	NextLevelXP int             `gorm:"column:next_level_xp;not null" json:"next_level_xp"`
	Streak      int             `gorm:"not null;default:0" json:"streak"`
	BudgetLimit decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"budget_limit"`
}

// NewProfile returns a profile with the defaults a freshly registered user gets.
func NewProfile(userID uint) *Profile {
	return &Profile{
		UserID:      userID,
		Currency:    DefaultCurrency,
		Level:       DefaultLevel,
		NextLevelXP: DefaultNextLevelXP,
		BudgetLimit: decimal.Zero,
	}
}

func (p Profile) OwnerID() uint { return p.UserID }
