package repository

import (
	"github.com/onside-finance/onside/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	*OwnedRepository[models.Subscription]
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		OwnedRepository: newOwnedRepository[models.Subscription](db, "next_date ASC, id ASC"),
	}
}
