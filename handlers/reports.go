package handlers

import (
	"strconv"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"
	"github.com/kavindarlm/tea-estate-webapp-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryReport struct {
	TotalTeaWeight     float64 `json:"total_tea_weight"`
	TotalEmployees     int64   `json:"total_employees"`
	TotalFactories     int64   `json:"total_factories"`
	AvgDailyProduction float64 `json:"avg_daily_production"`
	Year               int     `json:"year"`
}

type EmployeePerformance struct {
	EmpID          uint    `json:"emp_id"`
	EmpName        string  `json:"emp_name"`
	TotalWeight    float64 `json:"total_weight"`
	WorkingDays    int64   `json:"working_days"`
	AvgDailyWeight float64 `json:"avg_daily_weight"`
}

type FactoryAnalysis struct {
	FacID             uint    `json:"fac_id"`
	FacName           string  `json:"fac_name"`
	TotalWeight       float64 `json:"total_weight"`
	TotalDeliveries   int64   `json:"total_deliveries"`
	AvgDeliveryWeight float64 `json:"avg_delivery_weight"`
	MaxDelivery       float64 `json:"max_delivery"`
	MinDelivery       float64 `json:"min_delivery"`
}

type TopPerformers struct {
	TopEmployees []EmployeePerformance `json:"top_employees"`
	TopFactories []FactoryAnalysis     `json:"top_factories"`
	Year         int                   `json:"year"`
}

// GetReports handles GET /api/reports?reportType=…&year=…&month=….
func GetReports(c *fiber.Ctx) error {
	now := time.Now()
	year := queryIntOrDefault(c, "year", now.Year())
	month := queryIntOrDefault(c, "month", int(now.Month()))

	var (
		data interface{}
		err  error
	)

	switch c.Query("reportType") {
	case "summary":
		data, err = summaryReport(year)
	case "employee-performance":
		data, err = employeePerformanceReport(year, month)
	case "factory-analysis":
		data, err = factoryAnalysisReport(year)
	case "top-performers":
		data, err = topPerformersReport(year)
	default:
		var summary *SummaryReport
		summary, err = summaryReport(year)
		if err == nil {
			var top *TopPerformers
			top, err = topPerformersReport(year)
			if err == nil {
				data = fiber.Map{
					"summary":       summary,
					"topPerformers": top,
				}
			}
		}
	}

	if err != nil {
		utils.Logger.Error("Failed to build report", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    data,
	})
}

func summaryReport(year int) (*SummaryReport, error) {
	start, end := yearBounds(year)
	report := SummaryReport{Year: year}

	err := DB.Model(&models.TeaWeight{}).
		Select("COALESCE(SUM(tea_weight_total), 0)").
		Where("tea_weight_date BETWEEN ? AND ?", start, end).
		Scan(&report.TotalTeaWeight).Error
	if err != nil {
		return nil, err
	}

	if err := DB.Model(&models.Employee{}).Count(&report.TotalEmployees).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&models.Factory{}).Count(&report.TotalFactories).Error; err != nil {
		return nil, err
	}

	err = DB.Model(&models.TeaWeight{}).
		Select("COALESCE(AVG(tea_weight_total), 0)").
		Where("tea_weight_date BETWEEN ? AND ?", start, end).
		Scan(&report.AvgDailyProduction).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func employeePerformanceReport(year, month int) ([]EmployeePerformance, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	var stats []EmployeePerformance
	err := DB.Model(&models.EmployeeWeight{}).
		Select(`employee_weights.emp_id,
			employees.emp_name,
			COALESCE(SUM(employee_weights.emp_weight), 0) as total_weight,
			COUNT(employee_weights.emp_weight_id) as working_days,
			COALESCE(AVG(employee_weights.emp_weight), 0) as avg_daily_weight`).
		Joins("LEFT JOIN employees ON employees.emp_id = employee_weights.emp_id").
		Where("employee_weights.emp_weight_date BETWEEN ? AND ?", start, end).
		Group("employee_weights.emp_id, employees.emp_name").
		Order("total_weight DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func factoryAnalysisReport(year int) ([]FactoryAnalysis, error) {
	start, end := yearBounds(year)

	var stats []FactoryAnalysis
	err := DB.Model(&models.FactoryWeight{}).
		Select(`factory_weights.fac_id,
			factories.fac_name,
			COALESCE(SUM(factory_weights.fac_weight), 0) as total_weight,
			COUNT(factory_weights.fac_weight_id) as total_deliveries,
			COALESCE(AVG(factory_weights.fac_weight), 0) as avg_delivery_weight,
			COALESCE(MAX(factory_weights.fac_weight), 0) as max_delivery,
			COALESCE(MIN(factory_weights.fac_weight), 0) as min_delivery`).
		Joins("LEFT JOIN factories ON factories.fac_id = factory_weights.fac_id").
		Where("factory_weights.fac_weight_date BETWEEN ? AND ?", start, end).
		Group("factory_weights.fac_id, factories.fac_name").
		Order("total_weight DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func topPerformersReport(year int) (*TopPerformers, error) {
	start, end := yearBounds(year)
	report := TopPerformers{Year: year}

	err := DB.Model(&models.EmployeeWeight{}).
		Select(`employee_weights.emp_id,
			employees.emp_name,
			COALESCE(SUM(employee_weights.emp_weight), 0) as total_weight`).
		Joins("LEFT JOIN employees ON employees.emp_id = employee_weights.emp_id").
		Where("employee_weights.emp_weight_date BETWEEN ? AND ?", start, end).
		Group("employee_weights.emp_id, employees.emp_name").
		Order("total_weight DESC").
		Limit(10).
		Scan(&report.TopEmployees).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.FactoryWeight{}).
		Select(`factory_weights.fac_id,
			factories.fac_name,
			COALESCE(SUM(factory_weights.fac_weight), 0) as total_weight`).
		Joins("LEFT JOIN factories ON factories.fac_id = factory_weights.fac_id").
		Where("factory_weights.fac_weight_date BETWEEN ? AND ?", start, end).
		Group("factory_weights.fac_id, factories.fac_name").
		Order("total_weight DESC").
		Limit(5).
		Scan(&report.TopFactories).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}

type TeaWeightStat struct {
	Label string  `json:"label"` // day of month or month name
	Total float64 `json:"total"`
}

// GetTeaWeightStats handles GET /api/dashboard/tea-weight-stats?type=daily|monthly.
// Daily returns a per-day series for one month, monthly a per-month
// series for one year.
func GetTeaWeightStats(c *fiber.Ctx) error {
	now := time.Now()
	year := queryIntOrDefault(c, "year", now.Year())
	month := queryIntOrDefault(c, "month", int(now.Month()))

	var (
		start, end time.Time
		labelExpr  string
	)
	if c.Query("type") == "daily" {
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
		labelExpr = "strftime('%d', tea_weight_date)"
	} else {
		start, end = yearBounds(year)
		labelExpr = "strftime('%m', tea_weight_date)"
	}

	var stats []TeaWeightStat
	err := DB.Model(&models.TeaWeight{}).
		Select(labelExpr + " as label, COALESCE(SUM(tea_weight_total), 0) as total").
		Where("tea_weight_date BETWEEN ? AND ?", start, end).
		Group("label").
		Order("label ASC").
		Scan(&stats).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch tea weight stats", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}

func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999000000, time.Local)
	return start, end
}

func queryIntOrDefault(c *fiber.Ctx, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
