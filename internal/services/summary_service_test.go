package services

import (
	"testing"

	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_ForUser(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	budget := decimal.NewFromInt(100)
	_, err := env.users.Update(alice.ID, schemas.UserPatch{Profile: &schemas.ProfileFields{BudgetLimit: &budget}})
	require.NoError(t, err)

	env.addTransaction(t, alice.ID, "Salary", "1000.00", models.TransactionTypeIncome, "2024-05-01")
	env.addTransaction(t, alice.ID, "Coffee", "4.50", models.TransactionTypeExpense, "2024-05-02")
	env.addTransaction(t, alice.ID, "Lunch", "12.25", models.TransactionTypeExpense, "2024-05-03")
	env.addTransaction(t, bob.ID, "Rent", "800.00", models.TransactionTypeExpense, "2024-05-01")

	summary, err := env.summary.ForUser(alice.ID)
	require.NoError(t, err)

	assert.Equal(t, "1000.00", summary.Income.StringFixed(2))
	assert.Equal(t, "16.75", summary.Expense.StringFixed(2))
	assert.Equal(t, "983.25", summary.Balance.StringFixed(2))
	assert.Equal(t, "83.25", summary.BudgetRemaining.StringFixed(2))
	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, int64(3), summary.TransactionCount)
	assert.Zero(t, summary.GoalCount)
}

func TestSummaryService_Empty(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	summary, err := env.summary.ForUser(alice.ID)
	require.NoError(t, err)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Balance.IsZero())

	_, err = env.summary.ForUser(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
