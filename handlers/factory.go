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

type FactoryRequest struct {
	FacName    string `json:"fac_name"`
	FacAddress string `json:"fac_address"`
	FacEmail   string `json:"fac_email"`
}

func GetAllFactories(c *fiber.Ctx) error {
	var factories []models.Factory
	if err := DB.Find(&factories).Error; err != nil {
		utils.Logger.Error("Failed to fetch factories", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    factories,
	})
}

func GetFactory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("fac_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid factory ID",
		})
	}

	var factory models.Factory
	if err := DB.First(&factory, "fac_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Factory not found",
			})
		}
		utils.Logger.Error("Failed to fetch factory", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    factory,
	})
}

func AddFactory(c *fiber.Ctx) error {
	var req FactoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.FacName == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Factory name is required",
		})
	}

	factory := models.Factory{
		FacName:    req.FacName,
		FacAddress: req.FacAddress,
		FacEmail:   req.FacEmail,
		CreatedBy:  currentUserID(c),
	}
	if err := DB.Create(&factory).Error; err != nil {
		utils.Logger.Error("Failed to create factory", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Factory created successfully",
		Data:    factory,
	})
}

func UpdateFactory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("fac_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid factory ID",
		})
	}

	var req FactoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var factory models.Factory
	if err := DB.First(&factory, "fac_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Factory not found",
			})
		}
		utils.Logger.Error("Failed to fetch factory", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	updates := map[string]interface{}{
		"fac_name":    req.FacName,
		"fac_address": req.FacAddress,
		"fac_email":   req.FacEmail,
	}
	if err := DB.Model(&factory).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update factory", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Factory updated successfully",
		Data:    factory,
	})
}

func DeleteFactory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("fac_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid factory ID",
		})
	}

	result := DB.Delete(&models.Factory{}, "fac_id = ?", id)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete factory", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Factory not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Factory deleted successfully",
	})
}
