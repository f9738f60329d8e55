package handlers

import (
	"errors"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/services"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TeaWeightRequest struct {
	TeaWeightTotal float64 `json:"tea_weight_total"`
	TeaWeightDate  string  `json:"tea_weight_date"` // YYYY-MM-DD
}

type DayEntryRequest struct {
	Date            string                         `json:"date"` // YYYY-MM-DD
	EmployeeWeights []services.EmployeeWeightEntry `json:"employee_weights"`
	FactoryWeights  []services.FactoryWeightEntry  `json:"factory_weights"`
}

func GetAllTeaWeights(c *fiber.Ctx) error {
	var teaWeights []models.TeaWeight
	if err := DB.Order("tea_weight_date DESC").Find(&teaWeights).Error; err != nil {
		utils.Logger.Error("Failed to fetch tea weights", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    teaWeights,
	})
}

func GetTeaWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tea_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid tea weight ID",
		})
	}

	var teaWeight models.TeaWeight
	if err := DB.First(&teaWeight, "tea_weight_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Tea weight not found",
			})
		}
		utils.Logger.Error("Failed to fetch tea weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    teaWeight,
	})
}

// AddTeaWeight records one collection day: the per-employee and
// per-factory weights plus the derived summary row, atomically.
func AddTeaWeight(c *fiber.Ctx) error {
	var req DayEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	summary, err := TeaCollections.CreateDayEntry(services.DayEntry{
		Date:            date,
		CreatedBy:       currentUserID(c),
		EmployeeWeights: req.EmployeeWeights,
		FactoryWeights:  req.FactoryWeights,
	})
	if err != nil {
		utils.Logger.Error("Failed to create collection day", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Tea weight recorded successfully",
		Data:    summary,
	})
}

func UpdateTeaWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tea_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid tea weight ID",
		})
	}

	var req TeaWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var teaWeight models.TeaWeight
	if err := DB.First(&teaWeight, "tea_weight_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Tea weight not found",
			})
		}
		utils.Logger.Error("Failed to fetch tea weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	updates := map[string]interface{}{
		"tea_weight_total": req.TeaWeightTotal,
	}
	if req.TeaWeightDate != "" {
		date, err := time.Parse("2006-01-02", req.TeaWeightDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid date format. Use YYYY-MM-DD",
			})
		}
		updates["tea_weight_date"] = date
	}
	if err := DB.Model(&teaWeight).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update tea weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Tea weight updated successfully",
		Data:    teaWeight,
	})
}

// DeleteTeaWeight removes the summary and every weight row for the same
// day in one transaction.
func DeleteTeaWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("tea_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid tea weight ID",
		})
	}

	if err := TeaCollections.DeleteDay(uint(id)); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Tea weight not found",
			})
		}
		utils.Logger.Error("Failed to delete collection day", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Tea weight deleted successfully",
	})
}
