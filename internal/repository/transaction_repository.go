package repository

import (
	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	*OwnedRepository[models.Transaction]
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		OwnedRepository: newOwnedRepository[models.Transaction](db, "date DESC, id DESC"),
		db:              db,
	}
}

// Totals is the per-type sum of a user's transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (r *TransactionRepository) SumByType(userID uint) (Totals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	err := r.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			totals.Income = row.Total.Round(2)
		case models.TransactionTypeExpense:
			totals.Expense = row.Total.Round(2)
		}
	}
	return totals, nil
}
