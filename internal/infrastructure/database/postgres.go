package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dukahub/duka-api/internal/config"
	"github.com/dukahub/duka-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.Shop{},
		&entity.ShopMembership{},

		// Catalog entities
		&entity.Category{},
		&entity.Unit{},
		&entity.Product{},

		// Partner entities
		&entity.Customer{},
		&entity.Supplier{},

		// Inventory entities
		&entity.Stock{},
		&entity.StockMovement{},

		// Sales entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.SalesReturn{},
		&entity.SalesReturnItem{},

		// Purchasing entities
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},

		// Expense entities
		&entity.ExpenseCategory{},
		&entity.Expense{},
		&entity.ExpensePayment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}
