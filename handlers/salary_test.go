package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndCalculateSalary(t *testing.T) {
	app, db := setupTest(t)

	employee := models.Employee{EmpName: "Kumari"}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	record := models.EmployeeWeight{
		EmpWeight:     35,
		EmpWeightDate: time.Date(2024, 7, 20, 9, 0, 0, 0, time.Local),
		EmpID:         employee.EmpID,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create weight record: %v", err)
	}

	body, _ := json.Marshal(fiber.Map{
		"base_amount":          1000,
		"minimum_kg_threshold": 30,
		"per_kg_rate":          15,
	})
	req := httptest.NewRequest("POST", "/api/salary/config", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/salary/calculate?date=2024-07-20&employeeId=1", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)

	data := response.Data.(map[string]interface{})
	assert.Equal(t, 35.0, data["totalWeight"])
	assert.Equal(t, 1075.0, data["salary"])
	assert.Equal(t, 5.0, data["exceededWeight"])
}

func TestCalculateSalaryRequiresDate(t *testing.T) {
	app, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/api/salary/calculate", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCalculateSalaryWithoutConfig(t *testing.T) {
	app, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/api/salary/calculate?date=2024-07-20", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "No active salary configuration found", response.Error)
}

func TestGetActiveConfigWhenNoneExists(t *testing.T) {
	app, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/api/salary/config?active=true", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Nil(t, response.Data)
}

func TestCreateSalaryConfigRejectsNegative(t *testing.T) {
	app, _ := setupTest(t)

	body, _ := json.Marshal(fiber.Map{
		"base_amount":          -100,
		"minimum_kg_threshold": 30,
		"per_kg_rate":          15,
	})
	req := httptest.NewRequest("POST", "/api/salary/config", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUpdateSalaryConfigUnknownID(t *testing.T) {
	app, db := setupTest(t)

	existing := models.SalaryConfig{
		BaseAmount:         decimal.NewFromInt(1000),
		MinimumKgThreshold: decimal.NewFromInt(30),
		PerKgRate:          decimal.NewFromInt(15),
		IsActive:           true,
		CreatedBy:          1,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	body, _ := json.Marshal(fiber.Map{
		"base_amount":          1200,
		"minimum_kg_threshold": 25,
		"per_kg_rate":          20,
	})
	req := httptest.NewRequest("PUT", "/api/salary/config?id=9999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
