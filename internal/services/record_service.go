package services

import (
	"errors"

	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
)

var (
	ErrRecordNotFound = errors.New("not found")
	ErrOwnerRequired  = errors.New("record has no owner")
)

// RecordService implements list/get/create/update/delete for one kind of
// user-owned record. A record that exists but belongs to someone else is
// reported exactly like one that does not exist.
type RecordService[T models.Owned] struct {
	repo *repository.OwnedRepository[T]
}

func NewRecordService[T models.Owned](repo *repository.OwnedRepository[T]) *RecordService[T] {
	return &RecordService[T]{repo: repo}
}

func NewTransactionService(repo *repository.TransactionRepository) *RecordService[models.Transaction] {
	return NewRecordService(repo.OwnedRepository)
}

func NewSubscriptionService(repo *repository.SubscriptionRepository) *RecordService[models.Subscription] {
	return NewRecordService(repo.OwnedRepository)
}

func NewGoalService(repo *repository.GoalRepository) *RecordService[models.Goal] {
	return NewRecordService(repo.OwnedRepository)
}

func (s *RecordService[T]) List(userID uint) ([]T, error) {
	return s.repo.FindByUserID(userID)
}

func (s *RecordService[T]) ListAll() ([]T, error) {
	return s.repo.FindAll()
}

func (s *RecordService[T]) Get(userID, id uint) (*T, error) {
	record, err := s.repo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *RecordService[T]) Create(record *T) error {
	if (*record).OwnerID() == 0 {
		return ErrOwnerRequired
	}
	return s.repo.Create(record)
}

// Update loads the caller's record, lets apply mutate it and saves it.
func (s *RecordService[T]) Update(userID, id uint, apply func(*T)) (*T, error) {
	record, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	apply(record)
	if err := s.repo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService[T]) Delete(userID, id uint) error {
	deleted, err := s.repo.Delete(userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}
