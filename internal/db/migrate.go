package db

import (
	"craveseat/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/driver/postgres" // Postgres driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// Seeded vendor service categories, matched by name so reruns are idempotent
var defaultServiceCategories = []domain.ServiceCategory{
	{Name: "Restaurant", Description: "Prepared meals and dining"},
	{Name: "Bakery", Description: "Bread, cakes and pastries"},
	{Name: "Groceries", Description: "Everyday grocery items"},
	{Name: "Beverages", Description: "Drinks, juices and smoothies"},
	{Name: "Street Food", Description: "Quick local street eats"},
	{Name: "Catering", Description: "Bulk and event catering"},
	{Name: "Other", Description: "Anything else"},
}

// MigrateModels creates tables, foreign keys, constraints, columns and
// indexes for every model, then seeds the vendor categories
func MigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.UserProfile{},
		&domain.ServiceCategory{},
		&domain.VendorProfile{},
		&domain.VendorItem{},
		&domain.Craving{},
		&domain.Response{},
		&domain.Notification{},
	)
	if err != nil {
		return err
	}
	return SeedServiceCategories(db)
}

// SeedServiceCategories inserts the default vendor categories if missing
func SeedServiceCategories(db *gorm.DB) error {
	for _, category := range defaultServiceCategories {
		if err := db.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

// Migrate connects to the database and performs automatic migration
func Migrate(dsn string) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := MigrateModels(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
