package services

import (
	"testing"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Factory{},
		&models.EmployeeWeight{},
		&models.FactoryWeight{},
		&models.TeaWeight{},
		&models.Calendar{},
		&models.SalaryConfig{},
		&models.SystemFeature{},
		&models.UserSystemFeature{},
		&models.PasswordReset{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
