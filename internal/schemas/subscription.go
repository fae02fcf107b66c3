package schemas

import (
	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
)

type SubscriptionInput struct {
	Name     string           `json:"name" binding:"required,max=100" example:"Netflix"`
	Amount   *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"15.99"`
	Cycle    string           `json:"cycle" binding:"required,max=20" example:"monthly"`
	NextDate string           `json:"next_date" binding:"required,datetime=2006-01-02" example:"2024-06-01"`
	Logo     string           `json:"logo" binding:"max=500"`
}

func (in SubscriptionInput) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "amount", in.Amount)
	return errs.orNil()
}

func (in SubscriptionInput) ToModel(userID uint) *models.Subscription {
	s := &models.Subscription{UserID: userID}
	in.Apply(s)
	return s
}

func (in SubscriptionInput) Apply(s *models.Subscription) {
	s.Name = in.Name
	s.Amount = *in.Amount
	s.Cycle = in.Cycle
	s.NextDate = mustDate(in.NextDate)
	s.Logo = in.Logo
}

type SubscriptionPatch struct {
	Name     *string          `json:"name" binding:"omitnil,min=1,max=100"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"string"`
	Cycle    *string          `json:"cycle" binding:"omitnil,min=1,max=20"`
	NextDate *string          `json:"next_date" binding:"omitempty,datetime=2006-01-02"`
	Logo     *string          `json:"logo" binding:"omitempty,max=500"`
}

func (p SubscriptionPatch) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "amount", p.Amount)
	return errs.orNil()
}

func (p SubscriptionPatch) Apply(s *models.Subscription) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Amount != nil {
		s.Amount = *p.Amount
	}
	if p.Cycle != nil {
		s.Cycle = *p.Cycle
	}
	if p.NextDate != nil {
		s.NextDate = mustDate(*p.NextDate)
	}
	if p.Logo != nil {
		s.Logo = *p.Logo
	}
}

type SubscriptionResponse struct {
	ID       uint   `json:"id"`
	User     uint   `json:"user"`
	Name     string `json:"name"`
	Amount   string `json:"amount" example:"15.99"`
	Cycle    string `json:"cycle"`
	NextDate string `json:"next_date" example:"2024-06-01"`
	Logo     string `json:"logo"`
}

func NewSubscriptionResponse(s models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:       s.ID,
		User:     s.UserID,
		Name:     s.Name,
		Amount:   FormatMoney(s.Amount),
		Cycle:    s.Cycle,
		NextDate: FormatDate(s.NextDate),
		Logo:     s.Logo,
	}
}

func NewSubscriptionResponses(items []models.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, len(items))
	for i, s := range items {
		out[i] = NewSubscriptionResponse(s)
	}
	return out
}
