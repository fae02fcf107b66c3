package database

import (
	"fmt"
	"strings"

	"github.com/onside-finance/onside/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune the GORM session. The zero value is silent.
type Options struct {
	LogLevel string
}

func Connect(databaseURL string) (*gorm.DB, error) {
	return ConnectWithOptions(databaseURL, Options{})
}

func ConnectWithOptions(databaseURL string, opts Options) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	config := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(opts.LogLevel)),
		TranslateError: true,
	}

	inMemory := databaseURL == "" || databaseURL == ":memory:" || databaseURL == "sqlite::memory:"

	switch {
	case inMemory:
		db, err = gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), config)
	case strings.HasPrefix(databaseURL, "sqlite:"):
		dbPath := strings.TrimPrefix(databaseURL, "sqlite:")
		dbPath = dbPath + "?_foreign_keys=on&_journal_mode=WAL"
		db, err = gorm.Open(sqlite.Open(dbPath), config)
	default:
		db, err = gorm.Open(postgres.Open(databaseURL), config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if inMemory {
		// every new connection to :memory: is a fresh, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	zap.L().Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Transaction{},
		&models.Subscription{},
		&models.Goal{},
		&models.APIToken{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	moved, err := MigrateLegacySavingsGoals(db)
	if err != nil {
		return fmt.Errorf("legacy savings goal migration failed: %w", err)
	}
	if moved > 0 {
		zap.L().Info("moved legacy savings goals into goals", zap.Int("count", moved))
	}

	zap.L().Info("database migrations completed successfully")
	return nil
}

// MigrateLegacySavingsGoals copies every row of the superseded savings goal
// table into goals and drops the old table, all in one transaction. It is a
// no-op when the legacy table does not exist.
func MigrateLegacySavingsGoals(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(&models.LegacySavingsGoal{}) {
		return 0, nil
	}

	moved := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var legacy []models.LegacySavingsGoal
		if err := tx.Order("id").Find(&legacy).Error; err != nil {
			return err
		}

		for _, old := range legacy {
			icon := old.Icon
			if icon == "" {
				icon = models.DefaultGoalIcon
			}
			goal := &models.Goal{
				UserID:        old.UserID,
				Name:          old.Name,
				TargetAmount:  old.TargetAmount,
				CurrentAmount: old.CurrentAmount,
				Icon:          icon,
			}
			if err := tx.Create(goal).Error; err != nil {
				return fmt.Errorf("failed to copy savings goal %d: %w", old.ID, err)
			}
			moved++
		}

		return tx.Migrator().DropTable(&models.LegacySavingsGoal{})
	})
	if err != nil {
		return 0, err
	}

	return moved, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
