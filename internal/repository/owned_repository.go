package repository

import (
	"errors"

	"gorm.io/gorm"
)

// OwnedRepository holds the storage operations shared by record types that
// belong to one user. Every lookup, update and delete is scoped by user_id.
type OwnedRepository[T any] struct {
	db    *gorm.DB
	order string
}

func newOwnedRepository[T any](db *gorm.DB, order string) *OwnedRepository[T] {
	return &OwnedRepository[T]{db: db, order: order}
}

func (r *OwnedRepository[T]) Create(record *T) error {
	return r.db.Create(record).Error
}

func (r *OwnedRepository[T]) FindByUserID(userID uint) ([]T, error) {
	records := []T{}
	err := r.db.Where("user_id = ?", userID).
		Order(r.order).
		Find(&records).Error
	return records, err
}

// FindByID returns nil, nil when no record with that id belongs to userID.
func (r *OwnedRepository[T]) FindByID(userID, id uint) (*T, error) {
	var record T
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *OwnedRepository[T]) Update(record *T) error {
	return r.db.Save(record).Error
}

// Delete reports whether a record was removed.
func (r *OwnedRepository[T]) Delete(userID, id uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *OwnedRepository[T]) DeleteByUserIDInTx(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(new(T)).Error
}

func (r *OwnedRepository[T]) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(new(T)).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *OwnedRepository[T]) FindAll() ([]T, error) {
	records := []T{}
	err := r.db.Order(r.order).Find(&records).Error
	return records, err
}
