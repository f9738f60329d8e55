package handlers

import (
	"errors"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/config"
	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Login authenticates by email and password and issues a JWT carrying
// the user id and role.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	err := DB.Where("user_email = ? AND deleted = ?", req.Email, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(401).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid email or password",
			})
		}
		utils.Logger.Error("Login lookup failed", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if !user.ValidatePassword(req.Password) {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid email or password",
		})
	}

	expiry, err := time.ParseDuration(config.AppConfig.TokenExpiryDuration)
	if err != nil {
		expiry = time.Hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.UserID,
		"email":   user.UserEmail,
		"role":    user.UserRole,
		"exp":     time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		utils.Logger.Error("Failed to sign token", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"token": signed,
			"user":  user,
		},
	})
}

// VerifyToken reports the claims of an already-authenticated request.
func VerifyToken(c *fiber.Ctx) error {
	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		},
	})
}

// ForgotPassword issues a reset token for the account. Token delivery
// is handled outside this service; the response never reveals whether
// the email exists.
func ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var user models.User
	err := DB.Where("user_email = ? AND deleted = ?", req.Email, false).First(&user).Error
	if err == nil {
		reset := models.PasswordReset{
			Token:     uuid.New().String(),
			UserID:    user.UserID,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		if err := DB.Create(&reset).Error; err != nil {
			utils.Logger.Error("Failed to create password reset", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Logger.Error("Password reset lookup failed", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "If the account exists, a reset token has been issued",
	})
}

// ResetPassword consumes a previously issued token and sets the new
// password.
func ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var reset models.PasswordReset
	err := DB.Where("token = ? AND used = ?", req.Token, false).First(&reset).Error
	if err != nil || time.Now().After(reset.ExpiresAt) {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid or expired reset token",
		})
	}

	var user models.User
	if err := DB.First(&user, "user_id = ?", reset.UserID).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUserNotFound.Error(),
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

	tx := DB.Begin()
	if err := tx.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Update("password", user.Password).Error; err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to update password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if err := tx.Model(&models.PasswordReset{}).
		Where("token = ?", reset.Token).
		Update("used", true).Error; err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to mark reset token used", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	tx.Commit()

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Password updated successfully",
	})
}

// currentUserID reads the authenticated user id set by the auth
// middleware. Zero when the request is unauthenticated.
func currentUserID(c *fiber.Ctx) uint {
	switch v := c.Locals("user_id").(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	default:
		return 0
	}
}
