package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SchoolStatusActive    = "active"
	SchoolStatusInactive  = "inactive"
	SchoolStatusSuspended = "suspended"
)

type SchoolModel struct {
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;primaryKey" json:"school_id"`

	SchoolName string `gorm:"column:school_name;type:varchar(255);not null" json:"school_name"`
	Code       string `gorm:"column:code;type:varchar(50);unique;not null" json:"code"`
	Address    string `gorm:"column:address;type:text" json:"address"`
	Email      string `gorm:"column:email;type:varchar(255)" json:"email"`

	ContactNumbers pq.StringArray `gorm:"column:contact_numbers;type:text[]" json:"contact_numbers"`
	Settings       datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings"`

	Status        string     `gorm:"column:status;type:varchar(20);not null;default:active" json:"status"`
	LicenseExpiry *time.Time `gorm:"column:license_expiry;type:date" json:"license_expiry,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}

func ValidSchoolStatus(s string) bool {
	switch s {
	case SchoolStatusActive, SchoolStatusInactive, SchoolStatusSuspended:
		return true
	}
	return false
}
