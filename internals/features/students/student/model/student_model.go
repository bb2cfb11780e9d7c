package model

import (
	"time"
)

// StudentModel represents the students table. Email is the primary key and is
// shared with the users table, linking the student to their login account. A
// row is created exactly once, at admission approval; this subsystem never
// deletes it.
type StudentModel struct {
	Email string `gorm:"type:varchar(255);primaryKey;column:email" json:"email"`

	// Carried over from the admission for traceability.
	StudentID *string `gorm:"type:varchar(100);unique;column:student_id" json:"student_id,omitempty"`

	StudentName string     `gorm:"size:255;not null;column:student_name" json:"student_name"`
	ParentName  string     `gorm:"size:255;column:parent_name" json:"parent_name"`
	DateOfBirth *time.Time `gorm:"type:date;column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"size:20;column:gender" json:"gender"`
	Grade       string     `gorm:"size:50;column:grade" json:"grade"`
	Address     string     `gorm:"type:text;column:address" json:"address"`
	Category    string     `gorm:"size:50;column:category" json:"category"`

	AdmissionNumber *string `gorm:"size:50;unique;column:admission_number" json:"admission_number,omitempty"`

	ParentPhone      string `gorm:"size:20;column:parent_phone" json:"parent_phone"`
	EmergencyContact string `gorm:"size:20;column:emergency_contact" json:"emergency_contact"`

	MedicalInformation string `gorm:"type:text;column:medical_information" json:"medical_information"`
	BloodGroup         string `gorm:"size:10;column:blood_group" json:"blood_group"`
	PreviousSchool     string `gorm:"size:255;column:previous_school" json:"previous_school"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}
