package models

type User struct {
	Model
	Username      string         `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email         string         `gorm:"size:254" json:"email"`
	FirstName     string         `gorm:"size:150" json:"first_name"`
	PasswordHash  string         `gorm:"size:100" json:"-"`
	Profile       *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Transactions  []Transaction  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Goals         []Goal         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	APITokens     []APIToken     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
