package services

import (
	"github.com/onside-finance/onside/internal/repository"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Currency          string
	Income            decimal.Decimal
	Expense           decimal.Decimal
	Balance           decimal.Decimal
	BudgetLimit       decimal.Decimal
	BudgetRemaining   decimal.Decimal
	TransactionCount  int64
	SubscriptionCount int64
	GoalCount         int64
}

// SummaryService aggregates a user's records for the dashboard.
type SummaryService struct {
	userRepo         *repository.UserRepository
	transactionRepo  *repository.TransactionRepository
	subscriptionRepo *repository.SubscriptionRepository
	goalRepo         *repository.GoalRepository
}

func NewSummaryService(
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	goalRepo *repository.GoalRepository,
) *SummaryService {
	return &SummaryService{
		userRepo:         userRepo,
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		goalRepo:         goalRepo,
	}
}

// ForUser sums income and expense amounts as stored. Amounts are signed, so
// a negative expense lowers the expense total.
func (s *SummaryService) ForUser(userID uint) (*Summary, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	totals, err := s.transactionRepo.SumByType(userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Income:  totals.Income,
		Expense: totals.Expense,
		Balance: totals.Income.Sub(totals.Expense),
	}
	if user.Profile != nil {
		summary.Currency = user.Profile.Currency
		summary.BudgetLimit = user.Profile.BudgetLimit
	}
	summary.BudgetRemaining = summary.BudgetLimit.Sub(totals.Expense)

	if summary.TransactionCount, err = s.transactionRepo.CountByUserID(userID); err != nil {
		return nil, err
	}
	if summary.SubscriptionCount, err = s.subscriptionRepo.CountByUserID(userID); err != nil {
		return nil, err
	}
	if summary.GoalCount, err = s.goalRepo.CountByUserID(userID); err != nil {
		return nil, err
	}

	return summary, nil
}
