package database

import (
	"fmt"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	applog "github.com/ajjstores/retail-ledger-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		return NewSQLiteDB(cfg.Name, debug)
	}
	return NewPostgresDB(cfg, debug)
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger: logger.New(applog.L(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	applog.L().Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewSQLiteDB opens a SQLite database for local runs and tests.
// SQLite allows one writer, so the pool is pinned to a single connection.
func NewSQLiteDB(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	applog.L().Info("Running database migrations...")

	err := db.AutoMigrate(
		// Actors
		&entity.Admin{},
		&entity.Store{},
		&entity.Company{},

		// Stock buckets
		&entity.Product{},
		&entity.StoreProduct{},

		// Warehouse intake and movement
		&entity.Purchase{},
		&entity.PurchaseDetail{},
		&entity.PurchaseReturn{},
		&entity.PurchaseReturnDetail{},
		&entity.Assignment{},
		&entity.AssignmentLine{},
		&entity.ProductRequest{},

		// Point of sale and customer ledger
		&entity.Customer{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.SaleReturn{},
		&entity.SaleReturnItem{},
		&entity.Transaction{},

		// System entities
		&entity.Counter{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.L().Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the bootstrap admin account if configured
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		applog.L().Info("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	var existing entity.Admin
	if err := db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		applog.L().Infof("Admin user already exists: %s", admin.Email)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Admin"
	}
	seed := entity.Admin{
		Name:     name,
		Email:    admin.Email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := db.Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	applog.L().Infof("Admin user created: %s", admin.Email)
	return nil
}
