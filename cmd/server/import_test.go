package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/config"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const importFixture = `[
  {"title": "Coffee", "amount": "4.50", "type": "expense", "category": "Food", "date": "2024-05-01"},
  {"title": "Refund", "amount": "10.00", "type": "refund", "category": "Food", "date": "2024-05-02"},
  {"title": "Salary", "amount": 2500, "type": "income", "category": "Salary", "date": "2024-05-03"}
]`

func setupImport(t *testing.T) (*app.App, []schemas.TransactionInput) {
	t.Helper()

	a, err := app.Open(&config.Config{
		Database: config.DatabaseConfig{URL: ":memory:"},
		JWT:      config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	a.UserService.SetPasswordCost(bcrypt.MinCost)

	_, err = a.UserService.Register(schemas.UserCreate{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	var entries []schemas.TransactionInput
	require.NoError(t, json.Unmarshal([]byte(importFixture), &entries))
	return a, entries
}

func TestImportTransactions(t *testing.T) {
	a, entries := setupImport(t)

	result, err := importTransactions(a, "alice", entries, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	user, err := a.UserService.GetByUsername("alice")
	require.NoError(t, err)
	stored, err := a.TransactionService.List(user.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Salary", stored[0].Title)
	assert.Equal(t, "2500.00", stored[0].Amount.StringFixed(2))
}

func TestImportTransactions_Strict(t *testing.T) {
	a, entries := setupImport(t)

	_, err := importTransactions(a, "alice", entries, true)
	require.Error(t, err)

	all, err := a.TransactionService.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportTransactions_UnknownUser(t *testing.T) {
	a, entries := setupImport(t)

	_, err := importTransactions(a, "nobody", entries, false)
	assert.Error(t, err)
}
