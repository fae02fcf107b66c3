package repository

import (
	"github.com/onside-finance/onside/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	*OwnedRepository[models.Goal]
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{
		OwnedRepository: newOwnedRepository[models.Goal](db, "id ASC"),
	}
}
