package schemas

import (
	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
)

// GoalInput is used for create and full replace. current_amount and icon
// fall back to their defaults on create and are left alone on replace when
// omitted.
type GoalInput struct {
	Name          string           `json:"name" binding:"required,max=200" example:"Vacation"`
	TargetAmount  *decimal.Decimal `json:"target_amount" binding:"required" swaggertype:"string" example:"2000.00"`
	CurrentAmount *decimal.Decimal `json:"current_amount" swaggertype:"string" example:"150.00"`
	Icon          *string          `json:"icon" binding:"omitempty,max=10"`
}

func (in GoalInput) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "target_amount", in.TargetAmount)
	checkMoney(errs, "current_amount", in.CurrentAmount)
	return errs.orNil()
}

func (in GoalInput) ToModel(userID uint) *models.Goal {
	g := &models.Goal{
		UserID:        userID,
		CurrentAmount: decimal.Zero,
		Icon:          models.DefaultGoalIcon,
	}
	in.Apply(g)
	return g
}

func (in GoalInput) Apply(g *models.Goal) {
	g.Name = in.Name
	g.TargetAmount = *in.TargetAmount
	if in.CurrentAmount != nil {
		g.CurrentAmount = *in.CurrentAmount
	}
	if in.Icon != nil && *in.Icon != "" {
		g.Icon = *in.Icon
	}
}

type GoalPatch struct {
	Name          *string          `json:"name" binding:"omitnil,min=1,max=200"`
	TargetAmount  *decimal.Decimal `json:"target_amount" swaggertype:"string"`
	CurrentAmount *decimal.Decimal `json:"current_amount" swaggertype:"string"`
	Icon          *string          `json:"icon" binding:"omitempty,max=10"`
}

func (p GoalPatch) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "target_amount", p.TargetAmount)
	checkMoney(errs, "current_amount", p.CurrentAmount)
	return errs.orNil()
}

func (p GoalPatch) Apply(g *models.Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Icon != nil && *p.Icon != "" {
		g.Icon = *p.Icon
	}
}

type GoalResponse struct {
	ID            uint   `json:"id"`
	User          uint   `json:"user"`
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount" example:"2000.00"`
	CurrentAmount string `json:"current_amount" example:"150.00"`
	Icon          string `json:"icon" example:"💰"`
}

func NewGoalResponse(g models.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		User:          g.UserID,
		Name:          g.Name,
		TargetAmount:  FormatMoney(g.TargetAmount),
		CurrentAmount: FormatMoney(g.CurrentAmount),
		Icon:          g.Icon,
	}
}

func NewGoalResponses(items []models.Goal) []GoalResponse {
	out := make([]GoalResponse, len(items))
	for i, g := range items {
		out[i] = NewGoalResponse(g)
	}
	return out
}
