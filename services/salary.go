package services

import (
	"errors"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryService computes daily wages from plucked-weight records and a
// single active tiered-rate configuration.
type SalaryService struct {
	DB *gorm.DB
}

func NewSalaryService(db *gorm.DB) *SalaryService {
	return &SalaryService{DB: db}
}

// SalaryResult is the outcome of one daily wage calculation. All money
// figures are fixed-point decimals.
type SalaryResult struct {
	TotalWeight    decimal.Decimal `json:"totalWeight"`
	Salary         decimal.Decimal `json:"salary"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	Threshold      decimal.Decimal `json:"threshold"`
	PerKgRate      decimal.Decimal `json:"perKgRate"`
	ExceededWeight decimal.Decimal `json:"exceededWeight"`
}

type EmployeeSalaryResult struct {
	Employee models.Employee `json:"employee"`
	SalaryResult
}

// GetAllConfigs returns every salary config, newest first. Historical
// configs are retained for audit.
func (s *SalaryService) GetAllConfigs() ([]models.SalaryConfig, error) {
	var configs []models.SalaryConfig
	if err := s.DB.Order("created_at DESC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// GetActiveConfig returns the single active salary config, or
// types.ErrNoActiveConfig when none exists.
func (s *SalaryService) GetActiveConfig() (*models.SalaryConfig, error) {
	var config models.SalaryConfig
	err := s.DB.Where("is_active = ?", true).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNoActiveConfig
		}
		return nil, err
	}
	return &config, nil
}

// CreateConfig deactivates every existing config and creates the new one
// as active, in a single transaction.
func (s *SalaryService) CreateConfig(config *models.SalaryConfig) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(&models.SalaryConfig{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	config.IsActive = true
	if err := tx.Create(config).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// UpdateConfig edits an existing config and makes it the active one,
// deactivating all others in the same transaction. Returns
// types.ErrNotFound for an unknown id.
func (s *SalaryService) UpdateConfig(id uint, data models.SalaryConfig) (*models.SalaryConfig, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(&models.SalaryConfig{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var config models.SalaryConfig
	if err := tx.First(&config, "salary_config_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"base_amount":          data.BaseAmount,
		"minimum_kg_threshold": data.MinimumKgThreshold,
		"per_kg_rate":          data.PerKgRate,
		"is_active":            true,
	}
	if err := tx.Model(&config).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &config, nil
}

// CalculateEmployeeSalary computes one employee's wage for one calendar
// day. Pure read-then-compute; nothing is written.
func (s *SalaryService) CalculateEmployeeSalary(employeeID uint, date time.Time) (*SalaryResult, error) {
	config, err := s.GetActiveConfig()
	if err != nil {
		return nil, err
	}
	return s.calculateWithConfig(config, employeeID, date)
}

// CalculateAllEmployeesSalary runs the daily calculation for every
// employee. The active config is fetched once and shared.
func (s *SalaryService) CalculateAllEmployeesSalary(date time.Time) ([]EmployeeSalaryResult, error) {
	config, err := s.GetActiveConfig()
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	if err := s.DB.Find(&employees).Error; err != nil {
		return nil, err
	}

	results := make([]EmployeeSalaryResult, 0, len(employees))
	for _, employee := range employees {
		calc, err := s.calculateWithConfig(config, employee.EmpID, date)
		if err != nil {
			return nil, err
		}
		results = append(results, EmployeeSalaryResult{
			Employee:     employee,
			SalaryResult: *calc,
		})
	}
	return results, nil
}

func (s *SalaryService) calculateWithConfig(config *models.SalaryConfig, employeeID uint, date time.Time) (*SalaryResult, error) {
	startOfDay, endOfDay := dayBounds(date)

	var total float64
	err := s.DB.Model(&models.EmployeeWeight{}).
		Select("COALESCE(SUM(emp_weight), 0)").
		Where("emp_id = ? AND emp_weight_date BETWEEN ? AND ?", employeeID, startOfDay, endOfDay).
		Scan(&total).Error
	if err != nil {
		return nil, err
	}

	totalWeight := decimal.NewFromFloat(total)
	salary := decimal.Zero

	// Below the threshold the employee earns nothing; the base amount
	// is not prorated.
	if totalWeight.GreaterThanOrEqual(config.MinimumKgThreshold) {
		salary = config.BaseAmount
		exceeded := totalWeight.Sub(config.MinimumKgThreshold)
		if exceeded.GreaterThan(decimal.Zero) {
			salary = salary.Add(exceeded.Mul(config.PerKgRate))
		}
	}

	exceededWeight := decimal.Max(decimal.Zero, totalWeight.Sub(config.MinimumKgThreshold))

	return &SalaryResult{
		TotalWeight:    totalWeight,
		Salary:         salary,
		BaseAmount:     config.BaseAmount,
		Threshold:      config.MinimumKgThreshold,
		PerKgRate:      config.PerKgRate,
		ExceededWeight: exceededWeight,
	}, nil
}

// dayBounds returns the inclusive local-day window
// [00:00:00.000, 23:59:59.999] around date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
