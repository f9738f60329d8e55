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

type UserRequest struct {
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	UserAddress string `json:"user_address"`
	UserPhone   string `json:"user_phone"`
	UserRole    string `json:"user_role"`
	UserNIC     string `json:"user_nic"`
	UserAge     int    `json:"user_age"`
	UserSex     string `json:"user_sex"`
	Password    string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// GetAllUsers lists accounts, excluding soft-deleted ones.
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := DB.Where("deleted = ?", false).Find(&users).Error; err != nil {
		utils.Logger.Error("Failed to fetch users", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    users,
	})
}

func GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ? AND deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrUserNotFound.Error(),
			})
		}
		utils.Logger.Error("Failed to fetch user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    user,
	})
}

func AddUser(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.UserEmail == "" || req.Password == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Email and password are required",
		})
	}

	user := models.User{
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		UserAddress: req.UserAddress,
		UserPhone:   req.UserPhone,
		UserRole:    req.UserRole,
		UserNIC:     req.UserNIC,
		UserAge:     req.UserAge,
		UserSex:     req.UserSex,
		Password:    req.Password,
	}
	if err := user.HashPassword(); err != nil {
		utils.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	if err := DB.Create(&user).Error; err != nil {
		utils.Logger.Error("Failed to create user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ? AND deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrUserNotFound.Error(),
			})
		}
		utils.Logger.Error("Failed to fetch user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	// Password changes go through the dedicated endpoint.
	updates := map[string]interface{}{
		"user_name":    req.UserName,
		"user_email":   req.UserEmail,
		"user_address": req.UserAddress,
		"user_phone":   req.UserPhone,
		"user_role":    req.UserRole,
		"user_nic":     req.UserNIC,
		"user_age":     req.UserAge,
		"user_sex":     req.UserSex,
	}
	if err := DB.Model(&user).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser soft-deletes: the row is flagged, never removed, so
// created_by references stay valid.
func DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	result := DB.Model(&models.User{}).
		Where("user_id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete user", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUserNotFound.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

func ChangePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("user_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil || req.NewPassword == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ? AND deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrUserNotFound.Error(),
			})
		}
		utils.Logger.Error("Failed to fetch user", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if !user.ValidatePassword(req.CurrentPassword) {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Current password is incorrect",
		})
	}

	user.Password = req.NewPassword
	if err := user.HashPassword(); err != nil {
		utils.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}
	if err := DB.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Update("password", user.Password).Error; err != nil {
		utils.Logger.Error("Failed to update password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Password updated successfully",
	})
}
