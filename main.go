package main

import (
	"log"

	"github.com/kavindarlm/tea-estate-webapp-sub000/config"
	"github.com/kavindarlm/tea-estate-webapp-sub000/handlers"
	"github.com/kavindarlm/tea-estate-webapp-sub000/middleware"
	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/services"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func initServices() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	err = DB.AutoMigrate(
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
		return err
	}

	handlers.InitHandlers(DB)

	// The feature set is static reference data.
	if err := services.NewFeatureService(DB).SeedSystemFeatures(); err != nil {
		return err
	}

	return nil
}

func registerRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", handlers.Login)
	api.Post("/auth/forgot-password", handlers.ForgotPassword)
	api.Post("/auth/reset-password", handlers.ResetPassword)

	protected := api.Group("", middleware.RequireAuth)
	protected.Get("/auth/verify", handlers.VerifyToken)

	// Employees
	protected.Get("/employee", handlers.GetAllEmployees)
	protected.Get("/employee/weight", handlers.GetEmployeeTotalWeights)
	protected.Get("/employee/:emp_id", handlers.GetEmployee)
	protected.Post("/employee", handlers.AddEmployee)
	protected.Put("/employee/:emp_id", handlers.UpdateEmployee)
	protected.Delete("/employee/:emp_id", handlers.DeleteEmployee)

	// Factories
	protected.Get("/factory", handlers.GetAllFactories)
	protected.Get("/factory/:fac_id", handlers.GetFactory)
	protected.Post("/factory", handlers.AddFactory)
	protected.Put("/factory/:fac_id", handlers.UpdateFactory)
	protected.Delete("/factory/:fac_id", handlers.DeleteFactory)

	// Tea weight collection
	protected.Get("/teaWeight", handlers.GetAllTeaWeights)
	protected.Get("/teaWeight/:tea_weight_id", handlers.GetTeaWeight)
	protected.Post("/teaWeight", handlers.AddTeaWeight)
	protected.Put("/teaWeight/:tea_weight_id", handlers.UpdateTeaWeight)
	protected.Delete("/teaWeight/:tea_weight_id", handlers.DeleteTeaWeight)

	protected.Get("/employeeWeight", handlers.GetAllEmployeeWeights)
	protected.Post("/employeeWeight", handlers.AddEmployeeWeight)
	protected.Put("/employeeWeight/:emp_weight_id", handlers.UpdateEmployeeWeight)
	protected.Delete("/employeeWeight/:emp_weight_id", handlers.DeleteEmployeeWeight)

	protected.Get("/factoryWeight", handlers.GetAllFactoryWeights)
	protected.Post("/factoryWeight", handlers.AddFactoryWeight)
	protected.Delete("/factoryWeight/:fac_weight_id", handlers.DeleteFactoryWeight)

	// Calendar notes
	protected.Get("/calendar", handlers.GetCalendars)
	protected.Get("/calendar/:cal_id", handlers.GetCalendar)
	protected.Post("/calendar", handlers.AddCalendar)
	protected.Put("/calendar/:cal_id", handlers.UpdateCalendar)
	protected.Delete("/calendar/:cal_id", handlers.DeleteCalendar)

	// Salary
	protected.Get("/salary/calculate", handlers.CalculateSalary)
	protected.Get("/salary/config", handlers.GetSalaryConfigs)

	// Feature access
	protected.Get("/system-features", handlers.GetSystemFeatures)
	protected.Get("/user-system-features", handlers.GetUserSystemFeatures)

	// Reports & dashboard
	protected.Get("/reports", handlers.GetReports)
	protected.Get("/dashboard/tea-weight-stats", handlers.GetTeaWeightStats)

	// Administrator only
	admin := protected.Group("", middleware.RequireAdmin)
	admin.Post("/salary/config", handlers.CreateSalaryConfig)
	admin.Put("/salary/config", handlers.UpdateSalaryConfig)
	admin.Post("/user-system-features", handlers.UpdateUserSystemFeatures)
	admin.Get("/user", handlers.GetAllUsers)
	admin.Get("/user/:user_id", handlers.GetUser)
	admin.Post("/user", handlers.AddUser)
	admin.Put("/user/:user_id", handlers.UpdateUser)
	admin.Delete("/user/:user_id", handlers.DeleteUser)
	admin.Put("/user/:user_id/password", handlers.ChangePassword)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()

	// Money figures serialize as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if err := initServices(); err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	app := fiber.New()
	registerRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
