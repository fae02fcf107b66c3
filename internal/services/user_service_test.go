package services

import (
	"errors"
	"testing"
	"time"

	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func TestUserService_Register(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.users.Register(schemas.UserCreate{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Password:  "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	require.NotNil(t, user.Profile)
	assert.Equal(t, "USD", user.Profile.Currency)
	assert.Equal(t, 1, user.Profile.Level)
	assert.Equal(t, 0, user.Profile.XP)
	assert.Equal(t, 1000, user.Profile.NextLevelXP)
	assert.Equal(t, 0, user.Profile.Streak)
	assert.True(t, user.Profile.BudgetLimit.IsZero())
}

func TestUserService_Register_WithProfile(t *testing.T) {
	env := setupTestEnv(t)

	budget := decimal.RequireFromString("250.00")
	user, err := env.users.Register(schemas.UserCreate{
		Username: "bob",
		Password: "password123",
		Profile:  &schemas.ProfileFields{Currency: strPtr("EUR"), Level: intPtr(0), BudgetLimit: &budget},
	})
	require.NoError(t, err)

	assert.Equal(t, "EUR", user.Profile.Currency)
	assert.Equal(t, 0, user.Profile.Level)
	assert.Equal(t, "250.00", user.Profile.BudgetLimit.StringFixed(2))
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	_, err := env.users.Register(schemas.UserCreate{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	count, err := env.userRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserService_Authenticate(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")

	user, err := env.users.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = env.users.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Authenticate("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_GetOrCreate(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.users.GetOrCreate("carol", "carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, created.Profile)
	assert.Empty(t, created.PasswordHash)

	again, err := env.users.GetOrCreate("carol", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "carol@example.com", again.Email)

	_, err = env.users.Authenticate("carol", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Update(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	updated, err := env.users.Update(alice.ID, schemas.UserPatch{
		FirstName: strPtr("Alice"),
		Profile:   &schemas.ProfileFields{Currency: strPtr("EUR"), Streak: intPtr(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "EUR", updated.Profile.Currency)
	assert.Equal(t, 3, updated.Profile.Streak)
	assert.Equal(t, 1, updated.Profile.Level)
}

func TestUserService_Update_Password(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.users.Update(alice.ID, schemas.UserPatch{Password: strPtr("new-password")})
	require.NoError(t, err)

	_, err = env.users.Authenticate("alice", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.users.Authenticate("alice", "new-password")
	assert.NoError(t, err)
}

func TestUserService_Update_UsernameTaken(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.users.Update(bob.ID, schemas.UserPatch{Username: strPtr("alice")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// keeping your own username is not a conflict
	_, err = env.users.Update(bob.ID, schemas.UserPatch{Username: strPtr("bob")})
	assert.NoError(t, err)
}

func TestUserService_Update_IsAtomic(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	err := env.db.Callback().Update().Before("gorm:update").Register("test:fail_profile", func(tx *gorm.DB) {
		if tx.Statement.Table == "profiles" {
			tx.AddError(errors.New("profile write failed"))
		}
	})
	require.NoError(t, err)

	_, err = env.users.Update(alice.ID, schemas.UserPatch{
		FirstName: strPtr("Changed"),
		Profile:   &schemas.ProfileFields{Currency: strPtr("EUR")},
	})
	require.Error(t, err)

	stored, err := env.users.Get(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.FirstName)
	assert.Equal(t, "USD", stored.Profile.Currency)
}

func TestUserService_Update_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.users.Update(999, schemas.UserPatch{FirstName: strPtr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_Cascades(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	env.addTransaction(t, alice.ID, "Coffee", "4.50", models.TransactionTypeExpense, "2024-05-01")
	env.addTransaction(t, bob.ID, "Salary", "3000.00", models.TransactionTypeIncome, "2024-05-01")
	require.NoError(t, env.subscriptions.Create(&models.Subscription{
		UserID: alice.ID, Name: "Netflix", Amount: decimal.RequireFromString("15.99"),
		Cycle: "monthly", NextDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, env.goals.Create(&models.Goal{
		UserID: alice.ID, Name: "Vacation", TargetAmount: decimal.NewFromInt(2000), Icon: models.DefaultGoalIcon,
	}))
	_, err := env.tokens.GenerateToken(alice, time.Hour)
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(alice.ID))

	_, err = env.users.Get(alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	for name, count := range map[string]func(uint) (int64, error){
		"transactions":  env.transactionRepo.CountByUserID,
		"subscriptions": env.subscriptionRepo.CountByUserID,
		"goals":         env.goalRepo.CountByUserID,
	} {
		n, err := count(alice.ID)
		require.NoError(t, err)
		assert.Zero(t, n, name)
	}

	var profiles, tokens int64
	env.db.Model(&models.Profile{}).Where("user_id = ?", alice.ID).Count(&profiles)
	env.db.Model(&models.APIToken{}).Where("user_id = ?", alice.ID).Count(&tokens)
	assert.Zero(t, profiles)
	assert.Zero(t, tokens)

	n, err := env.transactionRepo.CountByUserID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	assert.ErrorIs(t, env.users.Delete(42), ErrUserNotFound)
}
