package dto

import (
	"strings"
	"time"

	aModel "schoolku_backend/internals/features/admissions/admission/model"
	studentDTO "schoolku_backend/internals/features/students/student/dto"
	userDTO "schoolku_backend/internals/features/users/user/dto"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateAdmissionRequest — applicant/admin submission. Email is required at
// creation; student_id may be supplied or left blank to be generated.
type CreateAdmissionRequest struct {
	StudentID     string  `json:"student_id" validate:"omitempty,max=100"`
	StudentName   string  `json:"student_name" validate:"required,max=255"`
	ParentName    string  `json:"parent_name" validate:"omitempty,max=255"`
	DateOfBirth   *string `json:"date_of_birth,omitempty" validate:"omitempty"`
	Gender        string  `json:"gender" validate:"omitempty,max=20"`
	ApplyingClass string  `json:"applying_class" validate:"omitempty,max=50"`
	Grade         string  `json:"grade" validate:"omitempty,max=50"`
	Address       string  `json:"address" validate:"omitempty"`
	Category      string  `json:"category" validate:"omitempty,max=50"`

	AdmissionNumber string `json:"admission_number" validate:"omitempty,max=50"`

	Email            string `json:"email" validate:"required,email,max=255"`
	ParentPhone      string `json:"parent_phone" validate:"omitempty,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=20"`

	MedicalInformation string `json:"medical_information" validate:"omitempty"`
	BloodGroup         string `json:"blood_group" validate:"omitempty,max=10"`
	PreviousSchool     string `json:"previous_school" validate:"omitempty,max=255"`
	Remarks            string `json:"remarks" validate:"omitempty"`

	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected waitlisted"`
}

func (r *CreateAdmissionRequest) Normalize() {
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.ParentName = strings.TrimSpace(r.ParentName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.AdmissionNumber = strings.TrimSpace(r.AdmissionNumber)
	r.Status = strings.TrimSpace(strings.ToLower(r.Status))
}

func (r *CreateAdmissionRequest) ToModel() *aModel.NewAdmissionModel {
	m := &aModel.NewAdmissionModel{
		StudentID:          r.StudentID,
		StudentName:        r.StudentName,
		ParentName:         r.ParentName,
		Gender:             r.Gender,
		ApplyingClass:      r.ApplyingClass,
		Grade:              r.Grade,
		Address:            r.Address,
		Category:           r.Category,
		Email:              r.Email,
		ParentPhone:        r.ParentPhone,
		EmergencyContact:   r.EmergencyContact,
		MedicalInformation: r.MedicalInformation,
		BloodGroup:         r.BloodGroup,
		PreviousSchool:     r.PreviousSchool,
		Remarks:            r.Remarks,
		Status:             r.Status,
	}
	if m.Status == "" {
		m.Status = aModel.AdmissionStatusPending
	}
	// empty admission_number stays NULL
	if r.AdmissionNumber != "" {
		n := r.AdmissionNumber
		m.AdmissionNumber = &n
	}
	if r.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(*r.DateOfBirth)); err == nil {
			m.DateOfBirth = &t
		}
	}
	return m
}

// UpdateAdmissionRequest — partial update with pointer fields so omitted keys
// stay untouched. student_id is intentionally absent from this struct; the
// controller rejects any payload that tries to send it.
type UpdateAdmissionRequest struct {
	StudentName   *string `json:"student_name,omitempty" validate:"omitempty,max=255"`
	ParentName    *string `json:"parent_name,omitempty" validate:"omitempty,max=255"`
	DateOfBirth   *string `json:"date_of_birth,omitempty" validate:"omitempty"`
	Gender        *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	ApplyingClass *string `json:"applying_class,omitempty" validate:"omitempty,max=50"`
	Grade         *string `json:"grade,omitempty" validate:"omitempty,max=50"`
	Address       *string `json:"address,omitempty" validate:"omitempty"`
	Category      *string `json:"category,omitempty" validate:"omitempty,max=50"`

	AdmissionNumber *string `json:"admission_number,omitempty" validate:"omitempty,max=50"`

	Email            *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	ParentPhone      *string `json:"parent_phone,omitempty" validate:"omitempty,max=20"`
	EmergencyContact *string `json:"emergency_contact,omitempty" validate:"omitempty,max=20"`

	MedicalInformation *string `json:"medical_information,omitempty" validate:"omitempty"`
	BloodGroup         *string `json:"blood_group,omitempty" validate:"omitempty,max=10"`
	PreviousSchool     *string `json:"previous_school,omitempty" validate:"omitempty,max=255"`
	Remarks            *string `json:"remarks,omitempty" validate:"omitempty"`

	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected waitlisted"`
}

func (r *UpdateAdmissionRequest) Normalize() {
	trim := func(p **string) {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	trim(&r.StudentName)
	trim(&r.ParentName)
	trim(&r.AdmissionNumber)
	trim(&r.PreviousSchool)
	if r.Email != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &v
	}
	if r.Status != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Status))
		r.Status = &v
	}
}

// ApplyToModel applies present fields onto the existing row. An omitted email
// keeps the stored value; an empty admission_number clears it back to NULL.
func (r *UpdateAdmissionRequest) ApplyToModel(m *aModel.NewAdmissionModel) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.ParentName != nil {
		m.ParentName = *r.ParentName
	}
	if r.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(*r.DateOfBirth)); err == nil {
			m.DateOfBirth = &t
		}
	}
	if r.Gender != nil {
		m.Gender = *r.Gender
	}
	if r.ApplyingClass != nil {
		m.ApplyingClass = *r.ApplyingClass
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
	if r.AdmissionNumber != nil {
		if *r.AdmissionNumber == "" {
			m.AdmissionNumber = nil
		} else {
			m.AdmissionNumber = r.AdmissionNumber
		}
	}
	if r.Email != nil && *r.Email != "" {
		m.Email = *r.Email
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
	if r.PreviousSchool != nil {
		m.PreviousSchool = *r.PreviousSchool
	}
	if r.Remarks != nil {
		m.Remarks = *r.Remarks
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// AdmissionResponse mirrors the model plus the one-shot provisioning extras.
type AdmissionResponse struct {
	*aModel.NewAdmissionModel

	// Present only in the creation response.
	GeneratedPassword string                    `json:"generated_password,omitempty"`
	LoginCredentials  *userDTO.LoginCredentials `json:"login_credentials,omitempty"`

	// Present when approval happened as a side effect of this call.
	CreatedStudent *studentDTO.StudentResponse `json:"created_student,omitempty"`
}
