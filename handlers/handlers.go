package handlers

import (
	"github.com/kavindarlm/tea-estate-webapp-sub000/services"

	"gorm.io/gorm"
)

var (
	DB             *gorm.DB
	SalaryEngine   *services.SalaryService
	FeatureAccess  *services.FeatureService
	TeaCollections *services.TeaWeightService
)

func InitHandlers(db *gorm.DB) {
	DB = db
	SalaryEngine = services.NewSalaryService(db)
	FeatureAccess = services.NewFeatureService(db)
	TeaCollections = services.NewTeaWeightService(db)
}
