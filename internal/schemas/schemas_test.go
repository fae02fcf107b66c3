package schemas

import (
	"testing"

	"github.com/onside-finance/onside/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	fields, ok := err.(FieldErrors)
	require.True(t, ok, "expected FieldErrors, got %T", err)
	return fields
}

func TestTransactionInput(t *testing.T) {
	valid := TransactionInput{
		Title:    "Coffee",
		Amount:   dec("4.50"),
		Type:     "expense",
		Category: "Food",
		Date:     "2024-05-01",
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate(&valid))

		tx := valid.ToModel(7)
		assert.Equal(t, uint(7), tx.UserID)
		assert.Equal(t, "4.50", FormatMoney(tx.Amount))
		assert.Equal(t, "2024-05-01", FormatDate(tx.Date))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		in := valid
		in.Type = "refund"
		fields := fieldErrors(t, Validate(&in))
		assert.Contains(t, fields, "type")
	})

	t.Run("rejects three decimal places", func(t *testing.T) {
		in := valid
		in.Amount = dec("4.555")
		fields := fieldErrors(t, Validate(&in))
		assert.Contains(t, fields["amount"], "2 decimal places")
	})

	t.Run("rejects amounts beyond ten digits", func(t *testing.T) {
		in := valid
		in.Amount = dec("100000000.00")
		fields := fieldErrors(t, Validate(&in))
		assert.Contains(t, fields, "amount")
	})

	t.Run("accepts negative amounts", func(t *testing.T) {
		in := valid
		in.Amount = dec("-12.30")
		assert.NoError(t, Validate(&in))
	})

	t.Run("requires fields", func(t *testing.T) {
		fields := fieldErrors(t, Validate(&TransactionInput{}))
		for _, name := range []string{"title", "amount", "type", "category", "date"} {
			assert.Equal(t, "This field is required.", fields[name], name)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		in := valid
		in.Date = "01/05/2024"
		fields := fieldErrors(t, Validate(&in))
		assert.Contains(t, fields, "date")
	})
}

func TestTransactionPatch(t *testing.T) {
	tx := models.Transaction{
		UserID:   3,
		Title:    "Coffee",
		Amount:   decimal.RequireFromString("4.50"),
		Type:     models.TransactionTypeExpense,
		Category: "Food",
	}

	t.Run("only touches supplied fields", func(t *testing.T) {
		patch := TransactionPatch{Amount: dec("5.00")}
		require.NoError(t, Validate(&patch))
		patch.Apply(&tx)

		assert.Equal(t, "5.00", FormatMoney(tx.Amount))
		assert.Equal(t, "Coffee", tx.Title)
		assert.Equal(t, uint(3), tx.UserID)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		fields := fieldErrors(t, Validate(&TransactionPatch{Title: str("")}))
		assert.Equal(t, "This field may not be blank.", fields["title"])
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		fields := fieldErrors(t, Validate(&TransactionPatch{Type: str("refund")}))
		assert.Contains(t, fields, "type")
	})
}

func TestGoalInput(t *testing.T) {
	t.Run("applies defaults on create", func(t *testing.T) {
		in := GoalInput{Name: "Vacation", TargetAmount: dec("2000")}
		require.NoError(t, Validate(&in))

		goal := in.ToModel(1)
		assert.Equal(t, "0.00", FormatMoney(goal.CurrentAmount))
		assert.Equal(t, models.DefaultGoalIcon, goal.Icon)
	})

	t.Run("allows current above target", func(t *testing.T) {
		in := GoalInput{Name: "Bike", TargetAmount: dec("100"), CurrentAmount: dec("250")}
		require.NoError(t, Validate(&in))
		assert.Equal(t, "250.00", FormatMoney(in.ToModel(1).CurrentAmount))
	})

	t.Run("replace keeps omitted optional fields", func(t *testing.T) {
		goal := models.Goal{Name: "Old", CurrentAmount: decimal.NewFromInt(40), Icon: "🚲"}
		GoalInput{Name: "New", TargetAmount: dec("90")}.Apply(&goal)

		assert.Equal(t, "New", goal.Name)
		assert.Equal(t, "40.00", FormatMoney(goal.CurrentAmount))
		assert.Equal(t, "🚲", goal.Icon)
	})
}

func TestSubscriptionInput(t *testing.T) {
	in := SubscriptionInput{Name: "Netflix", Amount: dec("15.99"), Cycle: "monthly", NextDate: "2024-06-01"}
	require.NoError(t, Validate(&in))

	resp := NewSubscriptionResponse(*in.ToModel(2))
	assert.Equal(t, "15.99", resp.Amount)
	assert.Equal(t, "2024-06-01", resp.NextDate)
	assert.Equal(t, uint(2), resp.User)
}

func TestUserSchemas(t *testing.T) {
	t.Run("create requires username and password", func(t *testing.T) {
		fields := fieldErrors(t, Validate(&UserCreate{}))
		assert.Contains(t, fields, "username")
		assert.Contains(t, fields, "password")
	})

	t.Run("rejects invalid usernames", func(t *testing.T) {
		in := UserCreate{Username: "no spaces", Password: "long-enough"}
		fields := fieldErrors(t, Validate(&in))
		assert.Contains(t, fields, "username")
	})

	t.Run("reports nested profile fields", func(t *testing.T) {
		patch := UserPatch{Profile: &ProfileFields{Currency: str(""), BudgetLimit: dec("1.001")}}
		fields := fieldErrors(t, Validate(&patch))
		assert.Contains(t, fields, "profile.currency")

		patch.Profile.Currency = str("EUR")
		fields = fieldErrors(t, Validate(&patch))
		assert.Contains(t, fields, "profile.budget_limit")
	})

	t.Run("replace becomes a full patch", func(t *testing.T) {
		patch := UserReplace{Username: "alice", Email: ""}.AsPatch()
		require.NotNil(t, patch.Email)
		assert.Equal(t, "", *patch.Email)
		assert.Nil(t, patch.Password)

		user := models.User{Username: "old", Email: "old@example.com"}
		patch.ApplyUser(&user)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.Email)
	})

	t.Run("profile patch leaves other fields", func(t *testing.T) {
		profile := models.NewProfile(1)
		(&ProfileFields{Currency: str("EUR"), Streak: intPtr(4)}).Apply(profile)

		assert.Equal(t, "EUR", profile.Currency)
		assert.Equal(t, 4, profile.Streak)
		assert.Equal(t, models.DefaultLevel, profile.Level)
	})

	t.Run("response renders profile", func(t *testing.T) {
		user := models.User{Username: "alice", Profile: models.NewProfile(1)}
		resp := NewUserResponse(user)
		require.NotNil(t, resp.Profile)
		assert.Equal(t, "0.00", resp.Profile.BudgetLimit)
		assert.Equal(t, 1000, resp.Profile.NextLevelXP)
	})
}

func TestFieldErrorsMessage(t *testing.T) {
	err := FieldErrors{"type": "bad", "amount": "worse"}
	assert.Equal(t, "validation failed: amount: worse; type: bad", err.Error())
}

func intPtr(v int) *int { return &v }
