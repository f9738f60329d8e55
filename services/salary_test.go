package services

import (
	"errors"
	"testing"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newConfig(base, threshold, rate int64) models.SalaryConfig {
	return models.SalaryConfig{
		BaseAmount:         decimal.NewFromInt(base),
		MinimumKgThreshold: decimal.NewFromInt(threshold),
		PerKgRate:          decimal.NewFromInt(rate),
		CreatedBy:          1,
	}
}

func TestCalculateSalaryAboveThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	employee := models.Employee{EmpName: "Kumari"}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	weights := []float64{20, 15}
	for _, w := range weights {
		record := models.EmployeeWeight{
			EmpWeight:     w,
			EmpWeightDate: date.Add(8 * time.Hour),
			EmpID:         employee.EmpID,
			CreatedBy:     1,
		}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("Failed to create weight record: %v", err)
		}
	}

	result, err := svc.CalculateEmployeeSalary(employee.EmpID, date)
	assert.NoError(t, err)
	assert.True(t, result.TotalWeight.Equal(decimal.NewFromInt(35)), "total weight = %s", result.TotalWeight)
	assert.True(t, result.Salary.Equal(decimal.NewFromInt(1075)), "salary = %s", result.Salary)
	assert.True(t, result.BaseAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Threshold.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.PerKgRate.Equal(decimal.NewFromInt(15)))
	assert.True(t, result.ExceededWeight.Equal(decimal.NewFromInt(5)), "exceeded = %s", result.ExceededWeight)
}

func TestCalculateSalaryBelowThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	employee := models.Employee{EmpName: "Nimal"}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	record := models.EmployeeWeight{
		EmpWeight:     29.99,
		EmpWeightDate: date.Add(10 * time.Hour),
		EmpID:         employee.EmpID,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}

	result, err := svc.CalculateEmployeeSalary(employee.EmpID, date)
	assert.NoError(t, err)
	// The base amount is not prorated below the threshold.
	assert.True(t, result.Salary.IsZero(), "salary = %s", result.Salary)
	assert.True(t, result.ExceededWeight.IsZero(), "exceeded = %s", result.ExceededWeight)
}

func TestCalculateSalaryExactlyAtThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	employee := models.Employee{EmpName: "Sita"}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	record := models.EmployeeWeight{
		EmpWeight:     30,
		EmpWeightDate: date.Add(6 * time.Hour),
		EmpID:         employee.EmpID,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}

	result, err := svc.CalculateEmployeeSalary(employee.EmpID, date)
	assert.NoError(t, err)
	assert.True(t, result.Salary.Equal(decimal.NewFromInt(1000)), "salary = %s", result.Salary)
	assert.True(t, result.ExceededWeight.IsZero())
}

func TestCalculateSalaryIgnoresOtherDays(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	employee := models.Employee{EmpName: "Kamala"}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	sameDay := models.EmployeeWeight{EmpWeight: 40, EmpWeightDate: date.Add(23*time.Hour + 59*time.Minute), EmpID: employee.EmpID}
	nextDay := models.EmployeeWeight{EmpWeight: 50, EmpWeightDate: date.AddDate(0, 0, 1), EmpID: employee.EmpID}
	if err := db.Create(&sameDay).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}
	if err := db.Create(&nextDay).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}

	result, err := svc.CalculateEmployeeSalary(employee.EmpID, date)
	assert.NoError(t, err)
	assert.True(t, result.TotalWeight.Equal(decimal.NewFromInt(40)), "total weight = %s", result.TotalWeight)
}

func TestCalculateSalaryNoActiveConfig(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	_, err := svc.CalculateEmployeeSalary(1, time.Now())
	assert.True(t, errors.Is(err, types.ErrNoActiveConfig))

	_, err = svc.CalculateAllEmployeesSalary(time.Now())
	assert.True(t, errors.Is(err, types.ErrNoActiveConfig))
}

func TestCalculateSalaryUnknownEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	// An unknown employee simply has no weight records.
	result, err := svc.CalculateEmployeeSalary(9999, time.Now())
	assert.NoError(t, err)
	assert.True(t, result.TotalWeight.IsZero())
	assert.True(t, result.Salary.IsZero())
}

func TestCalculateAllEmployeesSalary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	first := models.Employee{EmpName: "Kumari"}
	second := models.Employee{EmpName: "Nimal"}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}

	config := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&config); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	if err := db.Create(&models.EmployeeWeight{EmpWeight: 35, EmpWeightDate: date.Add(9 * time.Hour), EmpID: first.EmpID}).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}

	results, err := svc.CalculateAllEmployeesSalary(date)
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	byID := make(map[uint]EmployeeSalaryResult, len(results))
	for _, r := range results {
		byID[r.Employee.EmpID] = r
	}
	assert.True(t, byID[first.EmpID].Salary.Equal(decimal.NewFromInt(1075)))
	assert.True(t, byID[second.EmpID].Salary.IsZero())
}

func TestSingleActiveConfigInvariant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	first := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&first); err != nil {
		t.Fatalf("Failed to create first config: %v", err)
	}
	second := newConfig(1200, 25, 20)
	if err := svc.CreateConfig(&second); err != nil {
		t.Fatalf("Failed to create second config: %v", err)
	}

	configs, err := svc.GetAllConfigs()
	assert.NoError(t, err)
	assert.Len(t, configs, 2)

	activeCount := 0
	for _, cfg := range configs {
		if cfg.IsActive {
			activeCount++
			assert.Equal(t, second.SalaryConfigID, cfg.SalaryConfigID)
		}
	}
	assert.Equal(t, 1, activeCount)

	active, err := svc.GetActiveConfig()
	assert.NoError(t, err)
	assert.Equal(t, second.SalaryConfigID, active.SalaryConfigID)
}

func TestUpdateConfigActivatesTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	first := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&first); err != nil {
		t.Fatalf("Failed to create first config: %v", err)
	}
	second := newConfig(1200, 25, 20)
	if err := svc.CreateConfig(&second); err != nil {
		t.Fatalf("Failed to create second config: %v", err)
	}

	updated, err := svc.UpdateConfig(first.SalaryConfigID, newConfig(1500, 28, 18))
	assert.NoError(t, err)
	assert.True(t, updated.IsActive)

	active, err := svc.GetActiveConfig()
	assert.NoError(t, err)
	assert.Equal(t, first.SalaryConfigID, active.SalaryConfigID)
	assert.True(t, active.BaseAmount.Equal(decimal.NewFromInt(1500)))

	var activeCount int64
	db.Model(&models.SalaryConfig{}).Where("is_active = ?", true).Count(&activeCount)
	assert.Equal(t, int64(1), activeCount)
}

func TestUpdateConfigUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSalaryService(db)

	existing := newConfig(1000, 30, 15)
	if err := svc.CreateConfig(&existing); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	_, err := svc.UpdateConfig(9999, newConfig(1500, 28, 18))
	assert.True(t, errors.Is(err, types.ErrNotFound))

	// The rollback must leave the previous active config in place.
	active, err := svc.GetActiveConfig()
	assert.NoError(t, err)
	assert.Equal(t, existing.SalaryConfigID, active.SalaryConfigID)
}
