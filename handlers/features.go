package handlers

import (
	"errors"
	"strconv"

	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UpdateUserFeaturesRequest struct {
	UserID      uint            `json:"userId"`
	Permissions map[string]bool `json:"permissions"`
}

// GetSystemFeatures handles GET /api/system-features?type=all|sidebar.
// With type=sidebar it resolves the caller-supplied userId/userRole into
// navigation entries.
func GetSystemFeatures(c *fiber.Ctx) error {
	switch c.Query("type") {
	case "all":
		features, err := FeatureAccess.GetAllSystemFeatures()
		if err != nil {
			return featureError(c, err)
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    features,
		})

	case "sidebar":
		userParam := c.Query("userId")
		if userParam == "" {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "userId is required for sidebar navigation",
			})
		}
		userID, err := strconv.ParseUint(userParam, 10, 32)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid user ID",
			})
		}

		// Default to the standard role when none is supplied.
		userRole := c.Query("userRole")
		if userRole == "" {
			userRole = "User"
		}

		navigation, err := FeatureAccess.GetSidebarNavigation(uint(userID), userRole)
		if err != nil {
			return featureError(c, err)
		}
		return c.JSON(types.APIResponse{
			Success: true,
			Data:    navigation,
		})

	default:
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   `Invalid type parameter. Use "all" or "sidebar"`,
		})
	}
}

// GetUserSystemFeatures handles GET /api/user-system-features?userId=N.
func GetUserSystemFeatures(c *fiber.Ctx) error {
	userParam := c.Query("userId")
	if userParam == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "userId is required",
		})
	}
	userID, err := strconv.ParseUint(userParam, 10, 32)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid user ID",
		})
	}

	features, err := FeatureAccess.GetUserSystemFeatures(uint(userID))
	if err != nil {
		return featureError(c, err)
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    features,
	})
}

// UpdateUserSystemFeatures handles POST /api/user-system-features. The
// permissions map is converted to feature ids and the user's grant set
// is replaced wholesale.
func UpdateUserSystemFeatures(c *fiber.Ctx) error {
	var req UpdateUserFeaturesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.UserID == 0 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "userId is required",
		})
	}
	if req.Permissions == nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "permissions object is required",
		})
	}

	featureIDs, err := FeatureAccess.ConvertPermissionsToFeatureIDs(req.Permissions)
	if err != nil {
		return featureError(c, err)
	}

	if err := FeatureAccess.GrantSystemFeaturesToUser(req.UserID, featureIDs); err != nil {
		return featureError(c, err)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "System features granted successfully",
	})
}

func featureError(c *fiber.Ctx, err error) error {
	if errors.Is(err, types.ErrUserNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrUserNotFound.Error(),
		})
	}
	utils.Logger.Error("Feature operation failed", zap.Error(err))
	return c.Status(500).JSON(types.APIResponse{
		Success: false,
		Error:   types.ErrDatabaseError,
	})
}
