package services

import (
	"errors"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"gorm.io/gorm"
)

// TeaWeightService owns the multi-row collection-day operations. Simple
// single-row CRUD stays in the handlers.
type TeaWeightService struct {
	DB *gorm.DB
}

func NewTeaWeightService(db *gorm.DB) *TeaWeightService {
	return &TeaWeightService{DB: db}
}

type EmployeeWeightEntry struct {
	EmpID  uint    `json:"emp_id"`
	Weight float64 `json:"weight"`
}

type FactoryWeightEntry struct {
	FacID  uint    `json:"fac_id"`
	Weight float64 `json:"weight"`
}

// DayEntry is one collection day: per-employee and per-factory weights
// plus the derived summary row.
type DayEntry struct {
	Date            time.Time             `json:"date"`
	CreatedBy       uint                  `json:"created_by"`
	EmployeeWeights []EmployeeWeightEntry `json:"employee_weights"`
	FactoryWeights  []FactoryWeightEntry  `json:"factory_weights"`
}

// CreateDayEntry writes the employee rows, factory rows and the
// summary row for one collection day in a single transaction.
func (s *TeaWeightService) CreateDayEntry(entry DayEntry) (*models.TeaWeight, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var total float64
	for _, ew := range entry.EmployeeWeights {
		record := models.EmployeeWeight{
			EmpWeight:     ew.Weight,
			EmpWeightDate: entry.Date,
			EmpID:         ew.EmpID,
			CreatedBy:     entry.CreatedBy,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		total += ew.Weight
	}

	for _, fw := range entry.FactoryWeights {
		record := models.FactoryWeight{
			FacWeight:     fw.Weight,
			FacWeightDate: entry.Date,
			FacID:         fw.FacID,
			CreatedBy:     entry.CreatedBy,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	summary := models.TeaWeight{
		TeaWeightTotal: total,
		TeaWeightDate:  entry.Date,
		CreatedBy:      entry.CreatedBy,
	}
	if err := tx.Create(&summary).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeleteDay removes a tea-weight summary together with every employee
// and factory weight recorded on the same calendar day, atomically.
func (s *TeaWeightService) DeleteDay(teaWeightID uint) error {
	var summary models.TeaWeight
	err := s.DB.First(&summary, "tea_weight_id = ?", teaWeightID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrNotFound
		}
		return err
	}

	startOfDay, endOfDay := dayBounds(summary.TeaWeightDate)

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("emp_weight_date BETWEEN ? AND ?", startOfDay, endOfDay).
		Delete(&models.EmployeeWeight{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("fac_weight_date BETWEEN ? AND ?", startOfDay, endOfDay).
		Delete(&models.FactoryWeight{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.TeaWeight{}, "tea_weight_id = ?", teaWeightID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

type EmployeeTotalWeight struct {
	EmpID       uint    `json:"emp_id"`
	EmpName     string  `json:"emp_name"`
	TotalWeight float64 `json:"total_weight"`
}

// TotalWeightPerEmployee sums every recorded contribution per employee.
func (s *TeaWeightService) TotalWeightPerEmployee() ([]EmployeeTotalWeight, error) {
	var totals []EmployeeTotalWeight
	err := s.DB.Model(&models.EmployeeWeight{}).
		Select("employee_weights.emp_id, employees.emp_name, COALESCE(SUM(employee_weights.emp_weight), 0) as total_weight").
		Joins("LEFT JOIN employees ON employees.emp_id = employee_weights.emp_id").
		Group("employee_weights.emp_id, employees.emp_name").
		Order("total_weight DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
