package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// TransactionTypes lists the accepted values of Transaction.Type.
var TransactionTypes = []string{TransactionTypeIncome, TransactionTypeExpense}

type Transaction struct {
	Model
	UserID   uint            `gorm:"not null;index" json:"user"`
	Title    string          `gorm:"size:200;not null" json:"title"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type     string          `gorm:"size:10;not null;check:chk_transactions_type,type IN ('income','expense')" json:"type"`
	Category string          `gorm:"size:100;not null" json:"category"`
	Date     time.Time       `gorm:"type:date;not null;index" json:"date"`
}

func (t Transaction) OwnerID() uint { return t.UserID }

// IsValidTransactionType reports whether kind is one of TransactionTypes.
func IsValidTransactionType(kind string) bool {
	for _, t := range TransactionTypes {
		if t == kind {
			return true
		}
	}
	return false
}
