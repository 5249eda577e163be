package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopcart/pos-api/internal/config"
	"github.com/shopcart/pos-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Employee{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a default cashier account and, on an empty
// database, a handful of sample customers for autocomplete testing.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var master entity.Employee
	if err := db.Where("username = ?", "master").First(&master).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("master"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		master = entity.Employee{
			Username:     "master",
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := db.Create(&master).Error; err != nil {
			return fmt.Errorf("failed to create default cashier: %w", err)
		}
		log.Println("Created default cashier 'master' (change the password in production)")
	}

	var customerCount int64
	if err := db.Model(&entity.Customer{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if customerCount > 0 {
		return nil
	}

	samples := []struct {
		name, mobile, dob, email string
	}{
		{"John Doe", "9876543210", "15/05/1990", "john@example.com"},
		{"Jane Smith", "9876543211", "20/08/1985", "jane@example.com"},
		{"Bob Johnson", "9876543212", "10/12/1992", "bob@example.com"},
		{"Alice Brown", "9876543213", "25/03/1988", "alice@example.com"},
		{"Charlie Wilson", "9876543214", "05/11/1995", "charlie@example.com"},
		{"Diana Davis", "9876543215", "30/07/1980", "diana@example.com"},
		{"Edward Miller", "9876543216", "12/09/1993", "edward@example.com"},
		{"Fiona Garcia", "9876543217", "18/01/1987", "fiona@example.com"},
		{"George Taylor", "9876543218", "22/06/1991", "george@example.com"},
		{"Helen Anderson", "9876543219", "08/04/1989", "helen@example.com"},
	}

	for _, s := range samples {
		dob := s.dob
		email := s.email
		customer := entity.Customer{
			Name:   s.name,
			Mobile: s.mobile,
			DOB:    &dob,
			Email:  &email,
		}
		if err := db.Create(&customer).Error; err != nil {
			log.Printf("Warning: failed to seed customer %s: %v", s.name, err)
		}
	}

	log.Printf("Seeded %d sample customers", len(samples))
	return nil
}
