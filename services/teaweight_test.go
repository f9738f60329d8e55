package services

import (
	"errors"
	"testing"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createEmployee(t *testing.T, db *gorm.DB, name string) models.Employee {
	employee := models.Employee{EmpName: name}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	return employee
}

func createFactory(t *testing.T, db *gorm.DB, name string) models.Factory {
	factory := models.Factory{FacName: name}
	if err := db.Create(&factory).Error; err != nil {
		t.Fatalf("Failed to create factory: %v", err)
	}
	return factory
}

func TestCreateDayEntry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeaWeightService(db)

	kumari := createEmployee(t, db, "Kumari")
	nimal := createEmployee(t, db, "Nimal")
	factory := createFactory(t, db, "Halpewatte")

	date := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	summary, err := svc.CreateDayEntry(DayEntry{
		Date:      date,
		CreatedBy: 1,
		EmployeeWeights: []EmployeeWeightEntry{
			{EmpID: kumari.EmpID, Weight: 22.5},
			{EmpID: nimal.EmpID, Weight: 17.5},
		},
		FactoryWeights: []FactoryWeightEntry{
			{FacID: factory.FacID, Weight: 38},
		},
	})
	assert.NoError(t, err)
	assert.NotZero(t, summary.TeaWeightID)
	// The summary total is the employee sum, not the factory sum.
	assert.Equal(t, 40.0, summary.TeaWeightTotal)

	var employeeRows, factoryRows int64
	db.Model(&models.EmployeeWeight{}).Count(&employeeRows)
	db.Model(&models.FactoryWeight{}).Count(&factoryRows)
	assert.Equal(t, int64(2), employeeRows)
	assert.Equal(t, int64(1), factoryRows)
}

func TestDeleteDayRemovesOnlyThatDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeaWeightService(db)

	employee := createEmployee(t, db, "Kumari")
	factory := createFactory(t, db, "Halpewatte")

	day := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	nextDay := day.AddDate(0, 0, 1)

	first, err := svc.CreateDayEntry(DayEntry{
		Date:            day,
		EmployeeWeights: []EmployeeWeightEntry{{EmpID: employee.EmpID, Weight: 30}},
		FactoryWeights:  []FactoryWeightEntry{{FacID: factory.FacID, Weight: 30}},
	})
	if err != nil {
		t.Fatalf("Failed to create day entry: %v", err)
	}
	second, err := svc.CreateDayEntry(DayEntry{
		Date:            nextDay,
		EmployeeWeights: []EmployeeWeightEntry{{EmpID: employee.EmpID, Weight: 25}},
		FactoryWeights:  []FactoryWeightEntry{{FacID: factory.FacID, Weight: 25}},
	})
	if err != nil {
		t.Fatalf("Failed to create day entry: %v", err)
	}

	assert.NoError(t, svc.DeleteDay(first.TeaWeightID))

	var summaries []models.TeaWeight
	assert.NoError(t, db.Find(&summaries).Error)
	assert.Len(t, summaries, 1)
	assert.Equal(t, second.TeaWeightID, summaries[0].TeaWeightID)

	var employeeRows []models.EmployeeWeight
	assert.NoError(t, db.Find(&employeeRows).Error)
	assert.Len(t, employeeRows, 1)
	assert.Equal(t, 25.0, employeeRows[0].EmpWeight)

	var factoryRows []models.FactoryWeight
	assert.NoError(t, db.Find(&factoryRows).Error)
	assert.Len(t, factoryRows, 1)
	assert.Equal(t, 25.0, factoryRows[0].FacWeight)
}

func TestDeleteDayUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeaWeightService(db)

	err := svc.DeleteDay(9999)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestTotalWeightPerEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTeaWeightService(db)

	kumari := createEmployee(t, db, "Kumari")
	nimal := createEmployee(t, db, "Nimal")

	day := time.Date(2024, 7, 20, 0, 0, 0, 0, time.Local)
	records := []models.EmployeeWeight{
		{EmpID: kumari.EmpID, EmpWeight: 20, EmpWeightDate: day},
		{EmpID: kumari.EmpID, EmpWeight: 15, EmpWeightDate: day.AddDate(0, 0, 1)},
		{EmpID: nimal.EmpID, EmpWeight: 50, EmpWeightDate: day},
	}
	for i := range records {
		if err := db.Create(&records[i]).Error; err != nil {
			t.Fatalf("Failed to create weight record: %v", err)
		}
	}

	totals, err := svc.TotalWeightPerEmployee()
	assert.NoError(t, err)
	assert.Len(t, totals, 2)
	assert.Equal(t, nimal.EmpID, totals[0].EmpID)
	assert.Equal(t, 50.0, totals[0].TotalWeight)
	assert.Equal(t, kumari.EmpID, totals[1].EmpID)
	assert.Equal(t, "Kumari", totals[1].EmpName)
	assert.Equal(t, 35.0, totals[1].TotalWeight)
}
