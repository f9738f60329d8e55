package handlers

import (
	"testing"

	"github.com/kavindarlm/tea-estate-webapp-sub000/config"
	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	utils.InitLogger()
	decimal.MarshalJSONWithoutQuotes = true
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenExpiryDuration = "1h"
}

// setupTest builds a fresh app over an in-memory database with every
// route registered without auth middleware.
func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
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

	InitHandlers(db)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/auth/login", Login)
	api.Post("/auth/forgot-password", ForgotPassword)
	api.Post("/auth/reset-password", ResetPassword)
	api.Get("/salary/calculate", CalculateSalary)
	api.Get("/salary/config", GetSalaryConfigs)
	api.Post("/salary/config", CreateSalaryConfig)
	api.Put("/salary/config", UpdateSalaryConfig)
	api.Get("/user", GetAllUsers)
	api.Delete("/user/:user_id", DeleteUser)
	api.Get("/system-features", GetSystemFeatures)
	api.Get("/user-system-features", GetUserSystemFeatures)
	api.Post("/user-system-features", UpdateUserSystemFeatures)

	return app, db
}
