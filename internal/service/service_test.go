package service

import (
	"path/filepath"
	"testing"
	"time"

	"smart-billing/internal/config"
	"smart-billing/internal/database"
	"smart-billing/internal/models"

	"gorm.io/gorm"
)

// setupTestDB creates a throwaway sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		LogMode: false,
	}

	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB, name, contact string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Contact: contact}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create test customer: %v", err)
	}
	return customer
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, priceCent, quantity int64) models.Product {
	t.Helper()
	product := models.Product{Name: name, PriceCent: priceCent, Quantity: quantity}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return product
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
