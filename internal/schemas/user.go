package schemas

import (
	"time"

	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
)

// ProfileFields is the nested profile object. Every field is optional; an
// omitted field keeps its current (or default) value.
type ProfileFields struct {
	Phone       *string          `json:"phone" binding:"omitempty,max=20"`
	Country     *string          `json:"country" binding:"omitempty,max=100"`
	Currency    *string          `json:"currency" binding:"omitnil,min=1,max=10" example:"USD"`
	Level       *int             `json:"level" binding:"omitempty,min=0"`
	XP          *int             `json:"xp" binding:"omitempty,min=0"`
	NextLevelXP *int             `json:"next_level_xp" binding:"omitempty,min=0"`
	Streak      *int             `json:"streak" binding:"omitempty,min=0"`
	BudgetLimit *decimal.Decimal `json:"budget_limit" swaggertype:"string" example:"500.00"`
}

func (p *ProfileFields) validate(errs FieldErrors) {
	if p == nil {
		return
	}
	checkMoney(errs, "profile.budget_limit", p.BudgetLimit)
}

func (p *ProfileFields) Apply(profile *models.Profile) {
	if p == nil {
		return
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Country != nil {
		profile.Country = *p.Country
	}
	if p.Currency != nil {
		profile.Currency = *p.Currency
	}
	if p.Level != nil {
		profile.Level = *p.Level
	}
	if p.XP != nil {
		profile.XP = *p.XP
	}
	if p.NextLevelXP != nil {
		profile.NextLevelXP = *p.NextLevelXP
	}
	if p.Streak != nil {
		profile.Streak = *p.Streak
	}
	if p.BudgetLimit != nil {
		profile.BudgetLimit = *p.BudgetLimit
	}
}

// UserCreate registers a new account. The password is write-only.
type UserCreate struct {
	Username  string         `json:"username" binding:"required,max=150,username" example:"alice"`
	Email     string         `json:"email" binding:"omitempty,email,max=254"`
	FirstName string         `json:"first_name" binding:"max=150"`
	Password  string         `json:"password" binding:"required,min=8,max=128"`
	Profile   *ProfileFields `json:"profile"`
}

func (in UserCreate) Validate() error {
	errs := FieldErrors{}
	in.Profile.validate(errs)
	return errs.orNil()
}

// UserReplace is the body of a full update. The password stays unchanged
// when omitted.
type UserReplace struct {
	Username  string         `json:"username" binding:"required,max=150,username"`
	Email     string         `json:"email" binding:"omitempty,email,max=254"`
	FirstName string         `json:"first_name" binding:"max=150"`
	Password  string         `json:"password" binding:"omitempty,min=8,max=128"`
	Profile   *ProfileFields `json:"profile"`
}

func (in UserReplace) Validate() error {
	errs := FieldErrors{}
	in.Profile.validate(errs)
	return errs.orNil()
}

// AsPatch expresses the replacement as a patch that sets every user field.
func (in UserReplace) AsPatch() UserPatch {
	patch := UserPatch{
		Username:  &in.Username,
		Email:     &in.Email,
		FirstName: &in.FirstName,
		Profile:   in.Profile,
	}
	if in.Password != "" {
		patch.Password = &in.Password
	}
	return patch
}

type UserPatch struct {
	Username  *string        `json:"username" binding:"omitnil,min=1,max=150,username"`
	Email     *string        `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string        `json:"first_name" binding:"omitempty,max=150"`
	Password  *string        `json:"password" binding:"omitnil,min=8,max=128"`
	Profile   *ProfileFields `json:"profile"`
}

func (p UserPatch) Validate() error {
	errs := FieldErrors{}
	p.Profile.validate(errs)
	return errs.orNil()
}

// ApplyUser copies the user-level fields. The password is handled by the
// caller since it must be hashed.
func (p UserPatch) ApplyUser(user *models.User) {
	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileResponse struct {
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	NextLevelXP int    `json:"next_level_xp"`
	Streak      int    `json:"streak"`
	BudgetLimit string `json:"budget_limit" example:"0.00"`
}

type UserResponse struct {
	ID         uint             `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	FirstName  string           `json:"first_name"`
	Profile    *ProfileResponse `json:"profile"`
	DateJoined time.Time        `json:"date_joined"`
}

func NewUserResponse(u models.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		DateJoined: u.CreatedAt.UTC(),
	}
	if u.Profile != nil {
		resp.Profile = &ProfileResponse{
			Phone:       u.Profile.Phone,
			Country:     u.Profile.Country,
			Currency:    u.Profile.Currency,
			Level:       u.Profile.Level,
			XP:          u.Profile.XP,
			NextLevelXP: u.Profile.NextLevelXP,
			Streak:      u.Profile.Streak,
			BudgetLimit: FormatMoney(u.Profile.BudgetLimit),
		}
	}
	return resp
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	return out
}
