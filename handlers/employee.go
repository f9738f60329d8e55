package handlers

import (
	"errors"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeRequest struct {
	EmpName    string `json:"emp_name"`
	EmpAge     int    `json:"emp_age"`
	EmpSex     string `json:"emp_sex"`
	EmpAddress string `json:"emp_address"`
	EmpNIC     string `json:"emp_nic"`
}

func GetAllEmployees(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := DB.Find(&employees).Error; err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("emp_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "emp_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employee,
	})
}

func AddEmployee(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.EmpName == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee name is required",
		})
	}

	employee := models.Employee{
		EmpName:    req.EmpName,
		EmpAge:     req.EmpAge,
		EmpSex:     req.EmpSex,
		EmpAddress: req.EmpAddress,
		EmpNIC:     req.EmpNIC,
		CreatedBy:  currentUserID(c),
	}
	if err := DB.Create(&employee).Error; err != nil {
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("emp_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "emp_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	updates := map[string]interface{}{
		"emp_name":    req.EmpName,
		"emp_age":     req.EmpAge,
		"emp_sex":     req.EmpSex,
		"emp_address": req.EmpAddress,
		"emp_nic":     req.EmpNIC,
	}
	if err := DB.Model(&employee).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

func DeleteEmployee(c *fiber.Ctx) error {
	id, err := c.ParamsInt("emp_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employee ID",
		})
	}

	result := DB.Delete(&models.Employee{}, "emp_id = ?", id)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete employee", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deleted successfully",
	})
}

// GetEmployeeTotalWeights lists every employee with their all-time
// plucked total.
func GetEmployeeTotalWeights(c *fiber.Ctx) error {
	totals, err := TeaCollections.TotalWeightPerEmployee()
	if err != nil {
		utils.Logger.Error("Failed to fetch employee totals", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    totals,
	})
}
