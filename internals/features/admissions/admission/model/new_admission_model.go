package model

import (
	"time"
)

// Admission status values
const (
	AdmissionStatusPending    = "pending"
	AdmissionStatusApproved   = "approved"
	AdmissionStatusRejected   = "rejected"
	AdmissionStatusWaitlisted = "waitlisted"
)

var AdmissionStatuses = []string{
	AdmissionStatusPending,
	AdmissionStatusApproved,
	AdmissionStatusRejected,
	AdmissionStatusWaitlisted,
}

// NewAdmissionModel represents the new_admissions table. The student id is the
// natural primary key and never changes once the row exists; approval carries
// it over onto the Student record for traceability.
type NewAdmissionModel struct {
	StudentID string `gorm:"type:varchar(100);primaryKey;column:student_id" json:"student_id"`

	StudentName   string     `gorm:"size:255;not null;column:student_name" json:"student_name"`
	ParentName    string     `gorm:"size:255;column:parent_name" json:"parent_name"`
	DateOfBirth   *time.Time `gorm:"type:date;column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender        string     `gorm:"size:20;column:gender" json:"gender"`
	ApplyingClass string     `gorm:"size:50;column:applying_class" json:"applying_class"`
	Grade         string     `gorm:"size:50;column:grade" json:"grade"`
	Address       string     `gorm:"type:text;column:address" json:"address"`
	Category      string     `gorm:"size:50;column:category" json:"category"`

	// Optional, but unique when present. Empty string is normalized to NULL
	// before persisting so the partial unique index holds.
	AdmissionNumber *string `gorm:"size:50;unique;column:admission_number" json:"admission_number,omitempty"`

	Email            string `gorm:"size:255;not null;column:email" json:"email"`
	ParentPhone      string `gorm:"size:20;column:parent_phone" json:"parent_phone"`
	EmergencyContact string `gorm:"size:20;column:emergency_contact" json:"emergency_contact"`

	MedicalInformation string `gorm:"type:text;column:medical_information" json:"medical_information"`
	BloodGroup         string `gorm:"size:10;column:blood_group" json:"blood_group"`
	PreviousSchool     string `gorm:"size:255;column:previous_school" json:"previous_school"`
	Remarks            string `gorm:"type:text;column:remarks" json:"remarks"`

	Status string `gorm:"size:20;not null;default:'pending';column:status" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (NewAdmissionModel) TableName() string {
	return "new_admissions"
}

func (a *NewAdmissionModel) IsApproved() bool {
	return a.Status == AdmissionStatusApproved
}

func ValidAdmissionStatus(s string) bool {
	for _, v := range AdmissionStatuses {
		if v == s {
			return true
		}
	}
	return false
}
