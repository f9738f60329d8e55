package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func seedTestFeatures(t *testing.T) {
	if err := FeatureAccess.SeedSystemFeatures(); err != nil {
		t.Fatalf("Failed to seed system features: %v", err)
	}
}

func TestGetSystemFeaturesAll(t *testing.T) {
	app, _ := setupTest(t)
	seedTestFeatures(t)

	req := httptest.NewRequest("GET", "/api/system-features?type=all", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Len(t, response.Data.([]interface{}), 9)
}

func TestGetSystemFeaturesInvalidType(t *testing.T) {
	app, _ := setupTest(t)

	req := httptest.NewRequest("GET", "/api/system-features?type=bogus", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSidebarForAdmin(t *testing.T) {
	app, db := setupTest(t)
	seedTestFeatures(t)

	admin := models.User{UserName: "Admin", UserEmail: "admin@estate.lk", UserRole: "Admin", Password: "x"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	url := fmt.Sprintf("/api/system-features?type=sidebar&userId=%d&userRole=Admin", admin.UserID)
	req := httptest.NewRequest("GET", url, nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)

	navigation := response.Data.([]interface{})
	assert.Len(t, navigation, 9)
	first := navigation[0].(map[string]interface{})
	assert.Equal(t, "Dashboard", first["name"])
	assert.Equal(t, "/dashboard", first["href"])
	assert.Equal(t, "HomeIcon", first["icon"])
}

func TestSidebarUnknownUser(t *testing.T) {
	app, _ := setupTest(t)
	seedTestFeatures(t)

	req := httptest.NewRequest("GET", "/api/system-features?type=sidebar&userId=9999&userRole=User", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestUpdateUserSystemFeaturesFlow(t *testing.T) {
	app, db := setupTest(t)
	seedTestFeatures(t)

	user := models.User{UserName: "Picker", UserEmail: "picker@estate.lk", UserRole: "User", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	body, _ := json.Marshal(fiber.Map{
		"userId": user.UserID,
		"permissions": fiber.Map{
			"dashboard":         true,
			"salaryManagement":  true,
			"reportsManagement": false,
		},
	})
	req := httptest.NewRequest("POST", "/api/user-system-features", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "System features granted successfully", response.Message)

	url := fmt.Sprintf("/api/user-system-features?userId=%d", user.UserID)
	req = httptest.NewRequest("GET", url, nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var granted types.APIResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&granted))
	features := granted.Data.([]interface{})
	assert.Len(t, features, 2)

	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.(map[string]interface{})["name"].(string))
	}
	assert.Equal(t, []string{"Dashboard", "Salary"}, names)
}

func TestUpdateUserSystemFeaturesRequiresBody(t *testing.T) {
	app, _ := setupTest(t)

	body, _ := json.Marshal(fiber.Map{"userId": 1})
	req := httptest.NewRequest("POST", "/api/user-system-features", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
