package services

import (
	"testing"
	"time"

	"github.com/onside-finance/onside/internal/database"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
	"github.com/onside-finance/onside/internal/schemas"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db               *gorm.DB
	userRepo         *repository.UserRepository
	transactionRepo  *repository.TransactionRepository
	subscriptionRepo *repository.SubscriptionRepository
	goalRepo         *repository.GoalRepository
	tokenRepo        *repository.TokenRepository

	users         *UserService
	transactions  *RecordService[models.Transaction]
	subscriptions *RecordService[models.Subscription]
	goals         *RecordService[models.Goal]
	tokens        *TokenService
	summary       *SummaryService
	export        *ExportService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		transactionRepo:  repository.NewTransactionRepository(db),
		subscriptionRepo: repository.NewSubscriptionRepository(db),
		goalRepo:         repository.NewGoalRepository(db),
		tokenRepo:        repository.NewTokenRepository(db),
	}

	env.users = NewUserService(db, env.userRepo, env.transactionRepo, env.subscriptionRepo, env.goalRepo, env.tokenRepo)
	env.users.SetPasswordCost(bcrypt.MinCost)
	env.transactions = NewTransactionService(env.transactionRepo)
	env.subscriptions = NewSubscriptionService(env.subscriptionRepo)
	env.goals = NewGoalService(env.goalRepo)
	env.tokens = NewTokenService(env.tokenRepo, "test-secret", time.Hour)
	env.summary = NewSummaryService(env.userRepo, env.transactionRepo, env.subscriptionRepo, env.goalRepo)
	env.export = NewExportService(env.userRepo, env.transactionRepo, env.subscriptionRepo, env.goalRepo, "test-signing-key-32-characters!!")

	return env
}

func (env *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.users.Register(schemas.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) addTransaction(t *testing.T, userID uint, title, amount, kind, date string) *models.Transaction {
	t.Helper()
	d, err := time.Parse(schemas.DateLayout, date)
	require.NoError(t, err)

	tx := &models.Transaction{
		UserID:   userID,
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Type:     kind,
		Category: "General",
		Date:     d,
	}
	require.NoError(t, env.transactions.Create(tx))
	return tx
}
