package schemas

import (
	"time"

	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionInput is the body of a create or full replace. The owner is
// never read from the payload.
type TransactionInput struct {
	Title    string           `json:"title" binding:"required,max=200"`
	Amount   *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"4.50"`
	Type     string           `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Category string           `json:"category" binding:"required,max=100"`
	Date     string           `json:"date" binding:"required,datetime=2006-01-02" example:"2024-05-01"`
}

func (in TransactionInput) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "amount", in.Amount)
	return errs.orNil()
}

func (in TransactionInput) ToModel(userID uint) *models.Transaction {
	t := &models.Transaction{UserID: userID}
	in.Apply(t)
	return t
}

func (in TransactionInput) Apply(t *models.Transaction) {
	t.Title = in.Title
	t.Amount = *in.Amount
	t.Type = in.Type
	t.Category = in.Category
	t.Date = mustDate(in.Date)
}

// TransactionPatch is the body of a partial update.
type TransactionPatch struct {
	Title    *string          `json:"title" binding:"omitnil,min=1,max=200"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"string"`
	Type     *string          `json:"type" binding:"omitempty,oneof=income expense"`
	Category *string          `json:"category" binding:"omitnil,min=1,max=100"`
	Date     *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

func (p TransactionPatch) Validate() error {
	errs := FieldErrors{}
	checkMoney(errs, "amount", p.Amount)
	return errs.orNil()
}

func (p TransactionPatch) Apply(t *models.Transaction) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = mustDate(*p.Date)
	}
}

type TransactionResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Title     string    `json:"title"`
	Amount    string    `json:"amount" example:"4.50"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Date      string    `json:"date" example:"2024-05-01"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		User:      t.UserID,
		Title:     t.Title,
		Amount:    FormatMoney(t.Amount),
		Type:      t.Type,
		Category:  t.Category,
		Date:      FormatDate(t.Date),
		CreatedAt: t.CreatedAt.UTC(),
	}
}

func NewTransactionResponses(items []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(items))
	for i, t := range items {
		out[i] = NewTransactionResponse(t)
	}
	return out
}
