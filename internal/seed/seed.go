// Package seed fills a database with demo users and records.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultPassword = "onside-demo"

var (
	categories = []string{"Food", "Transport", "Rent", "Utilities", "Entertainment", "Health", "Shopping"}
	cycles     = []string{"monthly", "yearly", "weekly"}
	goalIcons  = []string{"💰", "🏖️", "🚗", "🏠", "🎓"}
	goalNames  = []string{"Vacation", "New car", "Emergency fund", "House deposit", "Course"}
)

// Options control how much data is generated per user.
type Options struct {
	Users                int
	TransactionsPerUser  int
	SubscriptionsPerUser int
	GoalsPerUser         int
}

func DefaultOptions(users int) Options {
	return Options{
		Users:                users,
		TransactionsPerUser:  20,
		SubscriptionsPerUser: 3,
		GoalsPerUser:         2,
	}
}

type Result struct {
	Users         []string
	Transactions  int
	Subscriptions int
	Goals         int
}

// Run creates opts.Users demo users, each with the configured number of records.
// Every demo user gets DefaultPassword.
func Run(a *app.App, faker *gofakeit.Faker, opts Options) (*Result, error) {
	result := &Result{}
	now := time.Now().UTC()

	for i := 0; i < opts.Users; i++ {
		username := fmt.Sprintf("%s%d", faker.Username(), faker.Number(100, 999))
		currency := faker.RandomString([]string{"USD", "EUR", "GBP"})
		budget := money(faker, 300, 3000)

		user, err := a.UserService.Register(schemas.UserCreate{
			Username:  username,
			Email:     faker.Email(),
			FirstName: faker.FirstName(),
			Password:  DefaultPassword,
			Profile: &schemas.ProfileFields{
				Currency:    &currency,
				BudgetLimit: &budget,
			},
		})
		if err != nil {
			return result, fmt.Errorf("failed to create user %s: %w", username, err)
		}
		result.Users = append(result.Users, user.Username)

		for j := 0; j < opts.TransactionsPerUser; j++ {
			kind := models.TransactionTypeExpense
			amount := money(faker, 1, 200)
			category := faker.RandomString(categories)
			if faker.Number(1, 5) == 1 {
				kind = models.TransactionTypeIncome
				amount = money(faker, 500, 4000)
				category = "Salary"
			}

			record := &models.Transaction{
				UserID:   user.ID,
				Title:    fmt.Sprintf("%s %s", category, faker.Word()),
				Amount:   amount,
				Type:     kind,
				Category: category,
				Date:     truncateDay(faker.DateRange(now.AddDate(0, -3, 0), now)),
			}
			if err := a.TransactionService.Create(record); err != nil {
				return result, err
			}
			result.Transactions++
		}

		for j := 0; j < opts.SubscriptionsPerUser; j++ {
			record := &models.Subscription{
				UserID:   user.ID,
				Name:     faker.Company(),
				Amount:   money(faker, 3, 60),
				Cycle:    faker.RandomString(cycles),
				NextDate: truncateDay(faker.DateRange(now, now.AddDate(0, 1, 0))),
			}
			if err := a.SubscriptionService.Create(record); err != nil {
				return result, err
			}
			result.Subscriptions++
		}

		for j := 0; j < opts.GoalsPerUser; j++ {
			target := money(faker, 500, 10000)
			record := &models.Goal{
				UserID:        user.ID,
				Name:          faker.RandomString(goalNames),
				TargetAmount:  target,
				CurrentAmount: target.Mul(decimal.NewFromInt(int64(faker.Number(0, 90)))).Div(decimal.NewFromInt(100)).Round(2),
				Icon:          faker.RandomString(goalIcons),
			}
			if err := a.GoalService.Create(record); err != nil {
				return result, err
			}
			result.Goals++
		}

		zap.L().Debug("seeded user", zap.String("username", user.Username))
	}

	return result, nil
}

func money(faker *gofakeit.Faker, min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(faker.Price(min, max)).Round(2)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
