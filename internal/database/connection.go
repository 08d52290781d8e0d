// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopfloor/inventory-backend/internal/config"
	"github.com/shopfloor/inventory-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			TranslateError: true,
		}
	}

	// Connect to database
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

// RunMigrations creates the products table and its indexes. Schema creation is
// idempotent so startup can always run it.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_expiry_date ON products(expiry_date)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedSampleData inserts a small demo inventory when the table is empty.
func SeedSampleData(db *gorm.DB) error {
	log.Println("Seeding sample data...")

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("Products table is not empty, skipping seed")
		return nil
	}

	today := time.Now()
	inDays := func(n int) *models.DateOnly {
		d := models.NewDateOnly(today.Year(), today.Month(), today.Day()+n)
		return &d
	}

	samples := []models.Product{
		{ID: "P001", Name: "Apples", Category: "Fruits", Price: decimal.NewFromFloat(2.50), Quantity: 120, ExpiryDate: inDays(5), Discount: decimal.NewFromInt(10)},
		{ID: "P002", Name: "Bananas", Category: "Fruits", Price: decimal.NewFromFloat(1.20), Quantity: 80, ExpiryDate: inDays(3)},
		{ID: "P003", Name: "Whole Milk", Category: "Dairy", Price: decimal.NewFromFloat(3.10), Quantity: 40, ExpiryDate: inDays(6), Discount: decimal.NewFromInt(5)},
		{ID: "P004", Name: "Cheddar Cheese", Category: "Dairy", Price: decimal.NewFromFloat(6.75), Quantity: 25, ExpiryDate: inDays(30)},
		{ID: "P005", Name: "Sourdough Loaf", Category: "Bakery", Price: decimal.NewFromFloat(4.00), Quantity: 15, ExpiryDate: inDays(2), Discount: decimal.NewFromInt(25)},
		{ID: "P006", Name: "Flour 1kg", Category: "Bakery", Price: decimal.NewFromFloat(1.80), Quantity: 200},
	}

	if err := db.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d sample products", len(samples))
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
