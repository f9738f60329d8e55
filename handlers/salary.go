package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SalaryConfigRequest struct {
	BaseAmount         decimal.Decimal `json:"base_amount"`
	MinimumKgThreshold decimal.Decimal `json:"minimum_kg_threshold"`
	PerKgRate          decimal.Decimal `json:"per_kg_rate"`
}

// CalculateSalary handles GET /api/salary/calculate?date=YYYY-MM-DD[&employeeId=N].
// Without employeeId it calculates for every employee.
func CalculateSalary(c *fiber.Ctx) error {
	dateParam := c.Query("date")
	if dateParam == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Date is required",
		})
	}

	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	if employeeParam := c.Query("employeeId"); employeeParam != "" {
		employeeID, err := strconv.ParseUint(employeeParam, 10, 32)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid employee ID",
			})
		}

		calculation, err := SalaryEngine.CalculateEmployeeSalary(uint(employeeID), date)
		if err != nil {
			return salaryError(c, err)
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    calculation,
		})
	}

	calculations, err := SalaryEngine.CalculateAllEmployeesSalary(date)
	if err != nil {
		return salaryError(c, err)
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    calculations,
	})
}

// GetSalaryConfigs handles GET /api/salary/config[?active=true].
func GetSalaryConfigs(c *fiber.Ctx) error {
	if c.Query("active") == "true" {
		config, err := SalaryEngine.GetActiveConfig()
		if err != nil {
			if errors.Is(err, types.ErrNoActiveConfig) {
				return c.JSON(types.APIResponse{
					Success: true,
					Data:    nil,
				})
			}
			return salaryError(c, err)
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    config,
		})
	}

	configs, err := SalaryEngine.GetAllConfigs()
	if err != nil {
		return salaryError(c, err)
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    configs,
	})
}

func CreateSalaryConfig(c *fiber.Ctx) error {
	var req SalaryConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	if req.BaseAmount.IsNegative() || req.MinimumKgThreshold.IsNegative() || req.PerKgRate.IsNegative() {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Amounts must not be negative",
		})
	}

	config := models.SalaryConfig{
		BaseAmount:         req.BaseAmount,
		MinimumKgThreshold: req.MinimumKgThreshold,
		PerKgRate:          req.PerKgRate,
		CreatedBy:          currentUserID(c),
	}
	if err := SalaryEngine.CreateConfig(&config); err != nil {
		return salaryError(c, err)
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Salary configuration created",
		Data:    config,
	})
}

func UpdateSalaryConfig(c *fiber.Ctx) error {
	idParam := c.Query("id")
	if idParam == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Config ID is required",
		})
	}
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid config ID",
		})
	}

	var req SalaryConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	config, err := SalaryEngine.UpdateConfig(uint(id), models.SalaryConfig{
		BaseAmount:         req.BaseAmount,
		MinimumKgThreshold: req.MinimumKgThreshold,
		PerKgRate:          req.PerKgRate,
	})
	if err != nil {
		return salaryError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary configuration updated",
		Data:    config,
	})
}

func salaryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, types.ErrNoActiveConfig):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNoActiveConfig.Error(),
		})
	case errors.Is(err, types.ErrNotFound):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Salary configuration not found",
		})
	default:
		utils.Logger.Error("Salary operation failed", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
}
