package handlers

import (
	"errors"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeWeightRequest struct {
	EmpWeight     float64 `json:"emp_weight"`
	EmpWeightDate string  `json:"emp_weight_date"` // YYYY-MM-DD
	EmpID         uint    `json:"emp_id"`
}

type FactoryWeightRequest struct {
	FacWeight     float64 `json:"fac_weight"`
	FacWeightDate string  `json:"fac_weight_date"` // YYYY-MM-DD
	FacID         uint    `json:"fac_id"`
}

func GetAllEmployeeWeights(c *fiber.Ctx) error {
	var weights []models.EmployeeWeight
	if err := DB.Order("emp_weight_date DESC").Find(&weights).Error; err != nil {
		utils.Logger.Error("Failed to fetch employee weights", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    weights,
	})
}

func AddEmployeeWeight(c *fiber.Ctx) error {
	var req EmployeeWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	date, err := time.Parse("2006-01-02", req.EmpWeightDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	weight := models.EmployeeWeight{
		EmpWeight:     req.EmpWeight,
		EmpWeightDate: date,
		EmpID:         req.EmpID,
		CreatedBy:     currentUserID(c),
	}
	if err := DB.Create(&weight).Error; err != nil {
		utils.Logger.Error("Failed to create employee weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Employee weight recorded successfully",
		Data:    weight,
	})
}

func UpdateEmployeeWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("emp_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee weight ID",
		})
	}

	var req EmployeeWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var weight models.EmployeeWeight
	if err := DB.First(&weight, "emp_weight_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee weight not found",
			})
		}
		utils.Logger.Error("Failed to fetch employee weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	updates := map[string]interface{}{
		"emp_weight": req.EmpWeight,
	}
	if req.EmpWeightDate != "" {
		date, err := time.Parse("2006-01-02", req.EmpWeightDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid date format. Use YYYY-MM-DD",
			})
		}
		updates["emp_weight_date"] = date
	}
	if req.EmpID != 0 {
		updates["emp_id"] = req.EmpID
	}
	if err := DB.Model(&weight).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update employee weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee weight updated successfully",
		Data:    weight,
	})
}

func DeleteEmployeeWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("emp_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee weight ID",
		})
	}

	result := DB.Delete(&models.EmployeeWeight{}, "emp_weight_id = ?", id)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete employee weight", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee weight not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee weight deleted successfully",
	})
}

func GetAllFactoryWeights(c *fiber.Ctx) error {
	var weights []models.FactoryWeight
	if err := DB.Order("fac_weight_date DESC").Find(&weights).Error; err != nil {
		utils.Logger.Error("Failed to fetch factory weights", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    weights,
	})
}

func AddFactoryWeight(c *fiber.Ctx) error {
	var req FactoryWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	date, err := time.Parse("2006-01-02", req.FacWeightDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	weight := models.FactoryWeight{
		FacWeight:     req.FacWeight,
		FacWeightDate: date,
		FacID:         req.FacID,
		CreatedBy:     currentUserID(c),
	}
	if err := DB.Create(&weight).Error; err != nil {
		utils.Logger.Error("Failed to create factory weight", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Factory weight recorded successfully",
		Data:    weight,
	})
}

func DeleteFactoryWeight(c *fiber.Ctx) error {
	id, err := c.ParamsInt("fac_weight_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid factory weight ID",
		})
	}

	result := DB.Delete(&models.FactoryWeight{}, "fac_weight_id = ?", id)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete factory weight", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Factory weight not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Factory weight deleted successfully",
	})
}
