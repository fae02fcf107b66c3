package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/onside-finance/onside/internal/repository"
	"github.com/onside-finance/onside/internal/schemas"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidExport    = errors.New("invalid export data")
)

// UserExport is a signed snapshot of everything a user owns.
type UserExport struct {
	UserID        uint                           `json:"user_id"`
	Username      string                         `json:"username"`
	Email         string                         `json:"email"`
	Transactions  []schemas.TransactionResponse  `json:"transactions"`
	Subscriptions []schemas.SubscriptionResponse `json:"subscriptions"`
	Goals         []schemas.GoalResponse         `json:"goals"`
	ExportedAt    time.Time                      `json:"exported_at"`
	Signature     string                         `json:"signature"`
}

type ExportService struct {
	userRepo         *repository.UserRepository
	transactionRepo  *repository.TransactionRepository
	subscriptionRepo *repository.SubscriptionRepository
	goalRepo         *repository.GoalRepository
	signingKey       string
}

func NewExportService(
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	goalRepo *repository.GoalRepository,
	signingKey string,
) *ExportService {
	return &ExportService{
		userRepo:         userRepo,
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		goalRepo:         goalRepo,
		signingKey:       signingKey,
	}
}

func (s *ExportService) Export(userID uint) (*UserExport, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	transactions, err := s.transactionRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	subscriptions, err := s.subscriptionRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	export := &UserExport{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Transactions:  schemas.NewTransactionResponses(transactions),
		Subscriptions: schemas.NewSubscriptionResponses(subscriptions),
		Goals:         schemas.NewGoalResponses(goals),
		ExportedAt:    time.Now().UTC(),
	}

	signature, err := s.sign(export)
	if err != nil {
		return nil, err
	}
	export.Signature = signature

	return export, nil
}

// Verify reports whether the export's signature matches its contents.
func (s *ExportService) Verify(export *UserExport) (bool, error) {
	if export == nil || export.Signature == "" {
		return false, ErrInvalidExport
	}

	computed, err := s.sign(export)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(computed), []byte(export.Signature)), nil
}

// VerifyJSON decodes raw export JSON and verifies it.
func (s *ExportService) VerifyJSON(data []byte) (bool, error) {
	var export UserExport
	if err := json.Unmarshal(data, &export); err != nil {
		return false, ErrInvalidExport
	}
	return s.Verify(&export)
}

func (s *ExportService) sign(export *UserExport) (string, error) {
	exportCopy := *export
	exportCopy.Signature = ""

	data, err := json.Marshal(exportCopy)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(s.signingKey))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
