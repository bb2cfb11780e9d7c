package dto

import (
	"strings"
	"time"

	sModel "schoolku_backend/internals/features/students/student/model"
)

/* =======================================================
   RESPONSE DTO
   ======================================================= */

type StudentResponse struct {
	Email              string     `json:"email"`
	StudentID          *string    `json:"student_id,omitempty"`
	StudentName        string     `json:"student_name"`
	ParentName         string     `json:"parent_name"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Gender             string     `json:"gender"`
	Grade              string     `json:"grade"`
	Address            string     `json:"address"`
	Category           string     `json:"category"`
	AdmissionNumber    *string    `json:"admission_number,omitempty"`
	ParentPhone        string     `json:"parent_phone"`
	EmergencyContact   string     `json:"emergency_contact"`
	MedicalInformation string     `json:"medical_information"`
	BloodGroup         string     `json:"blood_group"`
	PreviousSchool     string     `json:"previous_school"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func FromStudentModel(m *sModel.StudentModel) StudentResponse {
	return StudentResponse{
		Email:              m.Email,
		StudentID:          m.StudentID,
		StudentName:        m.StudentName,
		ParentName:         m.ParentName,
		DateOfBirth:        m.DateOfBirth,
		Gender:             m.Gender,
		Grade:              m.Grade,
		Address:            m.Address,
		Category:           m.Category,
		AdmissionNumber:    m.AdmissionNumber,
		ParentPhone:        m.ParentPhone,
		EmergencyContact:   m.EmergencyContact,
		MedicalInformation: m.MedicalInformation,
		BloodGroup:         m.BloodGroup,
		PreviousSchool:     m.PreviousSchool,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func FromStudentModels(ms []sModel.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromStudentModel(&ms[i]))
	}
	return out
}

/* =======================================================
   REQUEST DTO (partial update)
   ======================================================= */

type UpdateStudentRequest struct {
	StudentName        *string `json:"student_name,omitempty" validate:"omitempty,max=255"`
	ParentName         *string `json:"parent_name,omitempty" validate:"omitempty,max=255"`
	Gender             *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	Grade              *string `json:"grade,omitempty" validate:"omitempty,max=50"`
	Address            *string `json:"address,omitempty" validate:"omitempty"`
	Category           *string `json:"category,omitempty" validate:"omitempty,max=50"`
	ParentPhone        *string `json:"parent_phone,omitempty" validate:"omitempty,max=20"`
	EmergencyContact   *string `json:"emergency_contact,omitempty" validate:"omitempty,max=20"`
	MedicalInformation *string `json:"medical_information,omitempty" validate:"omitempty"`
	BloodGroup         *string `json:"blood_group,omitempty" validate:"omitempty,max=10"`
}

func (r *UpdateStudentRequest) Normalize() {
	if r.StudentName != nil {
		v := strings.TrimSpace(*r.StudentName)
		r.StudentName = &v
	}
	if r.ParentName != nil {
		v := strings.TrimSpace(*r.ParentName)
		r.ParentName = &v
	}
}

func (r *UpdateStudentRequest) ApplyToModel(m *sModel.StudentModel) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.ParentName != nil {
		m.ParentName = *r.ParentName
	}
	if r.Gender != nil {
		m.Gender = *r.Gender
	}
	if r.Grade != nil {
		m.Grade = *r.Grade
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.Category != nil {
		m.Category = *r.Category
	}
	if r.ParentPhone != nil {
		m.ParentPhone = *r.ParentPhone
	}
	if r.EmergencyContact != nil {
		m.EmergencyContact = *r.EmergencyContact
	}
	if r.MedicalInformation != nil {
		m.MedicalInformation = *r.MedicalInformation
	}
	if r.BloodGroup != nil {
		m.BloodGroup = *r.BloodGroup
	}
}
