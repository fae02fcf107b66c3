package app

import (
	"fmt"

	"github.com/onside-finance/onside/internal/config"
	"github.com/onside-finance/onside/internal/database"
	"github.com/onside-finance/onside/internal/metrics"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
	"github.com/onside-finance/onside/internal/services"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Metrics *metrics.Collector

	UserService         *services.UserService
	TokenService        *services.TokenService
	TransactionService  *services.RecordService[models.Transaction]
	SubscriptionService *services.RecordService[models.Subscription]
	GoalService         *services.RecordService[models.Goal]
	SummaryService      *services.SummaryService
	ExportService       *services.ExportService
}

// Open connects to the configured database, migrates it and wires the app.
func Open(cfg *config.Config) (*App, error) {
	db, err := database.ConnectWithOptions(cfg.Database.URL, database.Options{LogLevel: cfg.Database.LogLevel})
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return New(cfg, db), nil
}

// New wires repositories and services over an already migrated database.
func New(cfg *config.Config, db *gorm.DB) *App {
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	a := &App{
		Cfg: cfg,
		DB:  db,

		UserService:         services.NewUserService(db, userRepo, transactionRepo, subscriptionRepo, goalRepo, tokenRepo),
		TokenService:        services.NewTokenService(tokenRepo, cfg.JWT.Secret, cfg.JWT.Expiry),
		TransactionService:  services.NewTransactionService(transactionRepo),
		SubscriptionService: services.NewSubscriptionService(subscriptionRepo),
		GoalService:         services.NewGoalService(goalRepo),
		SummaryService:      services.NewSummaryService(userRepo, transactionRepo, subscriptionRepo, goalRepo),
		ExportService:       services.NewExportService(userRepo, transactionRepo, subscriptionRepo, goalRepo, cfg.ExportSigningKey),
	}

	if cfg.MetricsEnabled {
		a.Metrics = metrics.NewCollector()
	}

	return a
}

func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
