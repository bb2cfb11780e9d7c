package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"schoolku_backend/internals/features/schools/school/model"
)

type CreateSchoolRequest struct {
	SchoolName     string         `json:"school_name" validate:"required,min=3,max=255"`
	Code           string         `json:"code" validate:"required,min=2,max=50"`
	Address        string         `json:"address" validate:"omitempty"`
	Email          string         `json:"email" validate:"omitempty,email"`
	ContactNumbers []string       `json:"contact_numbers" validate:"omitempty,dive,max=30"`
	Settings       datatypes.JSON `json:"settings" validate:"omitempty"`
	Status         string         `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	LicenseExpiry  string         `json:"license_expiry" validate:"omitempty"`
}

func (r *CreateSchoolRequest) Normalize() {
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Address = strings.TrimSpace(r.Address)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.LicenseExpiry = strings.TrimSpace(r.LicenseExpiry)
}

func (r *CreateSchoolRequest) ToModel() *model.SchoolModel {
	status := r.Status
	if status == "" {
		status = model.SchoolStatusActive
	}

	var expiry *time.Time
	if r.LicenseExpiry != "" {
		if t, err := time.Parse("2006-01-02", r.LicenseExpiry); err == nil {
			expiry = &t
		}
	}

	return &model.SchoolModel{
		SchoolName:     r.SchoolName,
		Code:           r.Code,
		Address:        r.Address,
		Email:          r.Email,
		ContactNumbers: r.ContactNumbers,
		Settings:       r.Settings,
		Status:         status,
		LicenseExpiry:  expiry,
	}
}

type UpdateSchoolRequest struct {
	SchoolName     *string         `json:"school_name" validate:"omitempty,min=3,max=255"`
	Address        *string         `json:"address" validate:"omitempty"`
	Email          *string         `json:"email" validate:"omitempty,email"`
	ContactNumbers *[]string       `json:"contact_numbers" validate:"omitempty,dive,max=30"`
	Settings       *datatypes.JSON `json:"settings" validate:"omitempty"`
	Status         *string         `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	LicenseExpiry  *string         `json:"license_expiry" validate:"omitempty"`
}

func (r *UpdateSchoolRequest) Normalize() {
	if r.SchoolName != nil {
		*r.SchoolName = strings.TrimSpace(*r.SchoolName)
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Status != nil {
		*r.Status = strings.ToLower(strings.TrimSpace(*r.Status))
	}
	if r.LicenseExpiry != nil {
		*r.LicenseExpiry = strings.TrimSpace(*r.LicenseExpiry)
	}
}

func (r *UpdateSchoolRequest) ApplyToModel(m *model.SchoolModel) {
	if r.SchoolName != nil {
		m.SchoolName = *r.SchoolName
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.ContactNumbers != nil {
		m.ContactNumbers = *r.ContactNumbers
	}
	if r.Settings != nil {
		m.Settings = *r.Settings
	}
	if r.Status != nil && model.ValidSchoolStatus(*r.Status) {
		m.Status = *r.Status
	}
	if r.LicenseExpiry != nil {
		if *r.LicenseExpiry == "" {
			m.LicenseExpiry = nil
		} else if t, err := time.Parse("2006-01-02", *r.LicenseExpiry); err == nil {
			m.LicenseExpiry = &t
		}
	}
}
