package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CalendarRequest struct {
	CalDate  string `json:"cal_date"` // YYYY-MM-DD
	CalTitle string `json:"cal_title"`
	CalNote  string `json:"cal_note"`
}

// GetCalendars lists notes. Optional filters: userId, date (with userId).
func GetCalendars(c *fiber.Ctx) error {
	query := DB.Model(&models.Calendar{})

	if userParam := c.Query("userId"); userParam != "" {
		userID, err := strconv.ParseUint(userParam, 10, 32)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid user ID",
			})
		}
		query = query.Where("created_by = ?", userID)

		if dateParam := c.Query("date"); dateParam != "" {
			date, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				return c.Status(400).JSON(types.APIResponse{
					Success: false,
					Error:   "Invalid date format. Use YYYY-MM-DD",
				})
			}
			query = query.Where("cal_date = ?", date)
		}
	}

	var calendars []models.Calendar
	if err := query.Order("cal_date ASC").Find(&calendars).Error; err != nil {
		utils.Logger.Error("Failed to fetch calendar notes", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    calendars,
	})
}

func GetCalendar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("cal_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid calendar ID",
		})
	}

	var calendar models.Calendar
	if err := DB.First(&calendar, "cal_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Calendar note not found",
			})
		}
		utils.Logger.Error("Failed to fetch calendar note", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Data:    calendar,
	})
}

func AddCalendar(c *fiber.Ctx) error {
	var req CalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	date, err := time.Parse("2006-01-02", req.CalDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	}

	calendar := models.Calendar{
		CalDate:   date,
		CalTitle:  req.CalTitle,
		CalNote:   req.CalNote,
		CreatedBy: currentUserID(c),
	}
	if err := DB.Create(&calendar).Error; err != nil {
		utils.Logger.Error("Failed to create calendar note", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Calendar note created successfully",
		Data:    calendar,
	})
}

func UpdateCalendar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("cal_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid calendar ID",
		})
	}

	var req CalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var calendar models.Calendar
	if err := DB.First(&calendar, "cal_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Calendar note not found",
			})
		}
		utils.Logger.Error("Failed to fetch calendar note", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	updates := map[string]interface{}{
		"cal_title": req.CalTitle,
		"cal_note":  req.CalNote,
	}
	if req.CalDate != "" {
		date, err := time.Parse("2006-01-02", req.CalDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid date format. Use YYYY-MM-DD",
			})
		}
		updates["cal_date"] = date
	}
	if err := DB.Model(&calendar).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update calendar note", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Calendar note updated successfully",
		Data:    calendar,
	})
}

func DeleteCalendar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("cal_id")
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid calendar ID",
		})
	}

	result := DB.Delete(&models.Calendar{}, "cal_id = ?", id)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete calendar note", zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Calendar note not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Calendar note deleted successfully",
	})
}
