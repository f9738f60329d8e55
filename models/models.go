package models

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	UserID      uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserName    string    `gorm:"column:user_name;not null" json:"user_name"`
	UserEmail   string    `gorm:"column:user_email;unique;not null" json:"user_email"`
	UserAddress string    `gorm:"column:user_address" json:"user_address"`
	UserPhone   string    `gorm:"column:user_phone" json:"user_phone"`
	UserRole    string    `gorm:"column:user_role;not null" json:"user_role"` // Admin, User
	UserNIC     string    `gorm:"column:user_nic" json:"user_nic"`
	UserAge     int       `gorm:"column:user_age" json:"user_age"`
	UserSex     string    `gorm:"column:user_sex" json:"user_sex"`
	Password    string    `gorm:"column:password;not null" json:"-"`
	Deleted     bool      `gorm:"column:deleted;not null;default:false" json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidatePassword compares a plaintext password against the stored hash.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

type Employee struct {
	EmpID      uint      `gorm:"column:emp_id;primaryKey;autoIncrement" json:"emp_id"`
	EmpName    string    `gorm:"column:emp_name;not null" json:"emp_name"`
	EmpAge     int       `gorm:"column:emp_age" json:"emp_age"`
	EmpSex     string    `gorm:"column:emp_sex" json:"emp_sex"`
	EmpAddress string    `gorm:"column:emp_address" json:"emp_address"`
	EmpNIC     string    `gorm:"column:emp_nic" json:"emp_nic"`
	CreatedBy  uint      `gorm:"column:created_by" json:"created_by"`
	Creator    *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Factory struct {
	FacID      uint      `gorm:"column:fac_id;primaryKey;autoIncrement" json:"fac_id"`
	FacName    string    `gorm:"column:fac_name;not null" json:"fac_name"`
	FacAddress string    `gorm:"column:fac_address" json:"fac_address"`
	FacEmail   string    `gorm:"column:fac_email" json:"fac_email"`
	CreatedBy  uint      `gorm:"column:created_by" json:"created_by"`
	Creator    *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeWeight is one daily plucking contribution. An employee may have
// several rows for the same day; salary calculation sums them.
type EmployeeWeight struct {
	EmpWeightID   uint      `gorm:"column:emp_weight_id;primaryKey;autoIncrement" json:"emp_weight_id"`
	EmpWeight     float64   `gorm:"column:emp_weight;not null" json:"emp_weight"` // kg
	EmpWeightDate time.Time `gorm:"column:emp_weight_date;not null;index" json:"emp_weight_date"`
	EmpID         uint      `gorm:"column:emp_id;not null;index" json:"emp_id"`
	Employee      *Employee `gorm:"foreignKey:EmpID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	CreatedBy     uint      `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type FactoryWeight struct {
	FacWeightID   uint      `gorm:"column:fac_weight_id;primaryKey;autoIncrement" json:"fac_weight_id"`
	FacWeight     float64   `gorm:"column:fac_weight;not null" json:"fac_weight"` // kg
	FacWeightDate time.Time `gorm:"column:fac_weight_date;not null;index" json:"fac_weight_date"`
	FacID         uint      `gorm:"column:fac_id;not null;index" json:"fac_id"`
	Factory       *Factory  `gorm:"foreignKey:FacID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"factory,omitempty"`
	CreatedBy     uint      `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TeaWeight is the per-day collection summary row.
type TeaWeight struct {
	TeaWeightID    uint      `gorm:"column:tea_weight_id;primaryKey;autoIncrement" json:"tea_weight_id"`
	TeaWeightTotal float64   `gorm:"column:tea_weight_total;not null" json:"tea_weight_total"` // kg
	TeaWeightDate  time.Time `gorm:"column:tea_weight_date;not null;index" json:"tea_weight_date"`
	CreatedBy      uint      `gorm:"column:created_by" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Calendar struct {
	CalID     uint      `gorm:"column:cal_id;primaryKey;autoIncrement" json:"cal_id"`
	CalDate   time.Time `gorm:"column:cal_date;not null;index" json:"cal_date"`
	CalTitle  string    `gorm:"column:cal_title" json:"cal_title"`
	CalNote   string    `gorm:"column:cal_note;type:text" json:"cal_note"`
	CreatedBy uint      `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalaryConfig is one tiered pay rule. At most one row is active at any
// time; creating or updating a config deactivates all others first.
type SalaryConfig struct {
	SalaryConfigID     uint            `gorm:"column:salary_config_id;primaryKey;autoIncrement" json:"salary_config_id"`
	BaseAmount         decimal.Decimal `gorm:"column:base_amount;type:decimal(10,2);not null" json:"base_amount"`
	MinimumKgThreshold decimal.Decimal `gorm:"column:minimum_kg_threshold;type:decimal(5,2);not null;default:30.00" json:"minimum_kg_threshold"`
	PerKgRate          decimal.Decimal `gorm:"column:per_kg_rate;type:decimal(8,2);not null" json:"per_kg_rate"`
	IsActive           bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedBy          uint            `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// SystemFeature is a named capability surfaced as a sidebar section.
// The set is seeded once at startup and rarely changes.
type SystemFeature struct {
	SystemFeatureID uint   `gorm:"column:system_feature_id;primaryKey;autoIncrement" json:"system_feature_id"`
	Name            string `gorm:"column:name;unique;not null" json:"name"`
}

// UserSystemFeature grants one feature to one user. The pair is unique.
type UserSystemFeature struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;uniqueIndex:idx_user_feature" json:"user_id"`
	SystemFeatureID uint      `gorm:"column:system_feature_id;not null;uniqueIndex:idx_user_feature" json:"system_feature_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PasswordReset is an issued reset token. Delivery is handled outside
// this service.
type PasswordReset struct {
	Token     string    `gorm:"column:token;primaryKey" json:"token"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	Used      bool      `gorm:"column:used;not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
