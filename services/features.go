package services

import (
	"errors"
	"strings"

	"github.com/kavindarlm/tea-estate-webapp-sub000/models"
	"github.com/kavindarlm/tea-estate-webapp-sub000/types"

	"gorm.io/gorm"
)

// FeatureService resolves which system features a user may see and
// maintains per-user feature grants.
type FeatureService struct {
	DB *gorm.DB
}

func NewFeatureService(db *gorm.DB) *FeatureService {
	return &FeatureService{DB: db}
}

// NavItem is one sidebar entry.
type NavItem struct {
	Name    string `json:"name"`
	Href    string `json:"href"`
	Icon    string `json:"icon"`
	Current bool   `json:"current"`
}

// featureEntry ties together the three names one capability goes by:
// the UI permission key, the SystemFeature name, and the sidebar route.
// Keeping them in one table means the permission map and the navigation
// map cannot drift apart.
type featureEntry struct {
	PermissionKey string
	FeatureName   string
	Href          string
	Icon          string
}

var featureCatalog = []featureEntry{
	{"dashboard", "Dashboard", "/dashboard", "HomeIcon"},
	{"teaWeightManagement", "Tea Weight", "/tea-weight", "ScaleIcon"},
	{"employeeListManagement", "Employees List", "/employee-list", "UserGroupIcon"},
	{"factoryListManagement", "Factory List", "/factory-list", "BuildingLibraryIcon"},
	{"reportsManagement", "Reports", "/reports", "ChartPieIcon"},
	{"calendarManagement", "Calendar", "/calendar", "CalendarDaysIcon"},
	{"salaryManagement", "Salary", "/salary", "WalletIcon"},
	{"teaHealthManagement", "Tea Health", "/tea-health", "MagnifyingGlassCircleIcon"},
	{"userManagement", "User Management", "/user-management", "UserIcon"},
}

var (
	navigationByName        = make(map[string]featureEntry, len(featureCatalog))
	featureNameByPermission = make(map[string]string, len(featureCatalog))
)

func init() {
	for _, entry := range featureCatalog {
		navigationByName[entry.FeatureName] = entry
		featureNameByPermission[entry.PermissionKey] = entry.FeatureName
	}
}

// SeedSystemFeatures inserts the static feature set. Safe to run on
// every startup.
func (s *FeatureService) SeedSystemFeatures() error {
	for _, entry := range featureCatalog {
		var feature models.SystemFeature
		err := s.DB.Where("name = ?", entry.FeatureName).
			FirstOrCreate(&feature, models.SystemFeature{Name: entry.FeatureName}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetAllSystemFeatures returns every feature in ascending id order.
func (s *FeatureService) GetAllSystemFeatures() ([]models.SystemFeature, error) {
	var features []models.SystemFeature
	if err := s.DB.Order("system_feature_id ASC").Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

// GetUserSystemFeatures returns the features explicitly granted to a
// user, ascending by feature id. Returns types.ErrUserNotFound for an
// unknown user.
func (s *FeatureService) GetUserSystemFeatures(userID uint) ([]models.SystemFeature, error) {
	var user models.User
	if err := s.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrUserNotFound
		}
		return nil, err
	}

	var features []models.SystemFeature
	err := s.DB.Model(&models.SystemFeature{}).
		Joins("JOIN user_system_features ON user_system_features.system_feature_id = system_features.system_feature_id").
		Where("user_system_features.user_id = ?", userID).
		Order("system_features.system_feature_id ASC").
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

// GetSidebarNavigation computes the sidebar entries visible to a user.
// Admins see every feature; standard users see only their grants.
// Features without a catalog entry are dropped, not errors.
func (s *FeatureService) GetSidebarNavigation(userID uint, userRole string) ([]NavItem, error) {
	var (
		allowed []models.SystemFeature
		err     error
	)

	if strings.ToLower(userRole) == "admin" {
		allowed, err = s.GetAllSystemFeatures()
	} else {
		allowed, err = s.GetUserSystemFeatures(userID)
	}
	if err != nil {
		return nil, err
	}

	navigation := make([]NavItem, 0, len(allowed))
	for _, feature := range allowed {
		entry, ok := navigationByName[feature.Name]
		if !ok {
			continue
		}
		navigation = append(navigation, NavItem{
			Name:    feature.Name,
			Href:    entry.Href,
			Icon:    entry.Icon,
			Current: false,
		})
	}
	return navigation, nil
}

// GrantSystemFeaturesToUser replaces the user's grant set wholesale:
// every existing grant is deleted and one row per id is inserted, in a
// single transaction. Callers must pass the complete desired set.
func (s *FeatureService) GrantSystemFeaturesToUser(userID uint, featureIDs []uint) error {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("user_id = ?", userID).
		Delete(&models.UserSystemFeature{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(featureIDs) > 0 {
		grants := make([]models.UserSystemFeature, 0, len(featureIDs))
		for _, featureID := range featureIDs {
			grants = append(grants, models.UserSystemFeature{
				UserID:          userID,
				SystemFeatureID: featureID,
			})
		}
		if err := tx.Create(&grants).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// GrantSystemFeatureToUser adds a single grant if it does not already
// exist. Reports whether a new row was created.
func (s *FeatureService) GrantSystemFeatureToUser(userID, featureID uint) (bool, error) {
	var grant models.UserSystemFeature
	result := s.DB.Where("user_id = ? AND system_feature_id = ?", userID, featureID).
		FirstOrCreate(&grant, models.UserSystemFeature{
			UserID:          userID,
			SystemFeatureID: featureID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RevokeSystemFeatureFromUser removes a single grant. Reports whether a
// grant existed.
func (s *FeatureService) RevokeSystemFeatureFromUser(userID, featureID uint) (bool, error) {
	result := s.DB.Where("user_id = ? AND system_feature_id = ?", userID, featureID).
		Delete(&models.UserSystemFeature{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ConvertPermissionsToFeatureIDs translates a UI permission map into
// feature ids. Unknown or false-valued keys are silently excluded.
func (s *FeatureService) ConvertPermissionsToFeatureIDs(permissions map[string]bool) ([]uint, error) {
	featureNames := make([]string, 0, len(permissions))
	for key, granted := range permissions {
		if !granted {
			continue
		}
		if name, ok := featureNameByPermission[key]; ok {
			featureNames = append(featureNames, name)
		}
	}

	if len(featureNames) == 0 {
		return []uint{}, nil
	}

	var features []models.SystemFeature
	err := s.DB.Where("name IN ?", featureNames).
		Order("system_feature_id ASC").
		Find(&features).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(features))
	for _, feature := range features {
		ids = append(ids, feature.SystemFeatureID)
	}
	return ids, nil
}
