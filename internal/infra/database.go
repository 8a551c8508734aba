package infra

import (
	"fmt"

	"lpgpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema for every table the engine owns.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Location{},
		&model.Customer{},
		&model.CompanySetting{},
		&model.InventoryBalance{},
		&model.StockMovement{},
		&model.RestockAlert{},
		&model.PromoVoucher{},
		&model.PromoRedemption{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Payment{},
		&model.Receipt{},
		&model.Delivery{},
		&model.DailyClose{},
		&model.ChartOfAccount{},
		&model.LedgerEntry{},
		&model.LedgerLine{},
		&model.AuditLog{},
	)
}
