package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	aModel "schoolku_backend/internals/features/admissions/admission/model"
	sModel "schoolku_backend/internals/features/students/student/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

// LifecycleService owns the admission state machine: creation with account
// provisioning, the single pending→approved transition, and the promotion of
// an approved admission into a durable Student record.
type LifecycleService struct {
	DB    *gorm.DB
	Roles *userService.RoleRegistry
}

func NewLifecycleService(db *gorm.DB, roles *userService.RoleRegistry) *LifecycleService {
	return &LifecycleService{DB: db, Roles: roles}
}

// CreateResult carries everything the creation response needs. The one-time
// password exists only here; it is never retrievable again.
type CreateResult struct {
	Admission       *aModel.NewAdmissionModel
	User            *userModel.UserModel
	OneTimePassword string
}

// ApproveResult is returned by Approve and by updates whose status change
// triggered an approval.
type ApproveResult struct {
	Admission *aModel.NewAdmissionModel
	Student   *sModel.StudentModel
}

// CreateAdmission persists a new admission and synchronously provisions its
// student/parent login account.
func (s *LifecycleService) CreateAdmission(ctx context.Context, m *aModel.NewAdmissionModel) (*CreateResult, error) {
	if m.Email == "" {
		return nil, ErrEmailRequired
	}
	if m.Status == "" {
		m.Status = aModel.AdmissionStatusPending
	}

	var out CreateResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// student_id: generate when absent, otherwise enforce uniqueness
		if m.StudentID == "" {
			id, err := GenerateStudentID(tx)
			if err != nil {
				return err
			}
			m.StudentID = id
		} else {
			taken, err := studentIDTaken(tx, m.StudentID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateStudentID
			}
		}

		if m.AdmissionNumber != nil {
			taken, err := admissionNumberTaken(tx, *m.AdmissionNumber)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateAdmissionNumber
			}
		}

		prov, err := userService.ProvisionUser(tx, m.Email, constants.RoleStudentParent, s.Roles)
		if err != nil {
			if errors.Is(err, userService.ErrEmailTaken) {
				return ErrDuplicateEmail
			}
			return err
		}

		if err := tx.Create(m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrDuplicateStudentID
			}
			return err
		}

		out.Admission = m
		out.User = prov.User
		out.OneTimePassword = prov.OneTimePassword
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] admission created student_id=%s user=%s", m.StudentID, out.User.UserName)
	return &out, nil
}

// UpdateAdmission applies already-validated changes to an existing admission.
// When apply() moves the status from non-approved to approved, the approval
// side effects run inside the same transaction: if the student cannot be
// created, nothing of the update survives.
func (s *LifecycleService) UpdateAdmission(ctx context.Context, studentID string, apply func(*aModel.NewAdmissionModel)) (*aModel.NewAdmissionModel, *ApproveResult, error) {
	var (
		updated    *aModel.NewAdmissionModel
		approveRes *ApproveResult
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var adm aModel.NewAdmissionModel
		if err := tx.Where("student_id = ?", studentID).First(&adm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdmissionNotFound
			}
			return err
		}

		wasApproved := adm.IsApproved()
		apply(&adm)

		if adm.AdmissionNumber != nil {
			var count int64
			if err := tx.Model(&aModel.NewAdmissionModel{}).
				Where("admission_number = ? AND student_id <> ?", *adm.AdmissionNumber, adm.StudentID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateAdmissionNumber
			}
		}

		triggersApproval := !wasApproved && adm.IsApproved()
		if triggersApproval {
			// run the full approval path; adm.Status is already "approved"
			res, err := s.approveInTx(tx, &adm)
			if err != nil {
				return err
			}
			approveRes = res
		} else if err := tx.Save(&adm).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrDuplicateAdmissionNumber
			}
			return err
		}

		updated = &adm
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, approveRes, nil
}

// Approve is the standalone approval action. Per the ledger of effects:
// (a) generate admission_number when absent, (b) persist status=approved,
// (c) create the Student. A failure in (c) triggers an explicit compensating
// write restoring the prior status before the error is surfaced.
func (s *LifecycleService) Approve(ctx context.Context, studentID string) (*ApproveResult, error) {
	db := s.DB.WithContext(ctx)

	var adm aModel.NewAdmissionModel
	if err := db.Where("student_id = ?", studentID).First(&adm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdmissionNotFound
		}
		return nil, err
	}
	if adm.IsApproved() {
		return nil, ErrAlreadyApproved
	}

	priorStatus := adm.Status

	// (a) admission number
	if adm.AdmissionNumber == nil {
		num, err := GenerateAdmissionNumber(db)
		if err != nil {
			return nil, err
		}
		adm.AdmissionNumber = &num
	}

	// (b) durable status flip
	adm.Status = aModel.AdmissionStatusApproved
	if err := db.Save(&adm).Error; err != nil {
		return nil, err
	}

	// (c) student promotion; compensate (b) on failure
	student, err := s.createStudentFrom(db, &adm)
	if err != nil {
		adm.Status = priorStatus
		if rbErr := db.Save(&adm).Error; rbErr != nil {
			log.Printf("[ERROR] approval rollback failed for %s: %v", adm.StudentID, rbErr)
		}
		return nil, fmt.Errorf("student creation failed, approval rolled back: %w", err)
	}

	log.Printf("[INFO] admission approved student_id=%s email=%s", adm.StudentID, adm.Email)
	return &ApproveResult{Admission: &adm, Student: student}, nil
}

// approveInTx runs the approval effects inside an open transaction (used by
// UpdateAdmission, where all-or-nothing semantics come from the tx itself).
// The admission's status must already be set to approved by the caller.
func (s *LifecycleService) approveInTx(tx *gorm.DB, adm *aModel.NewAdmissionModel) (*ApproveResult, error) {
	if adm.AdmissionNumber == nil {
		num, err := GenerateAdmissionNumber(tx)
		if err != nil {
			return nil, err
		}
		adm.AdmissionNumber = &num
	}
	if err := tx.Save(adm).Error; err != nil {
		return nil, err
	}
	student, err := s.createStudentFrom(tx, adm)
	if err != nil {
		return nil, fmt.Errorf("student creation failed: %w", err)
	}
	return &ApproveResult{Admission: adm, Student: student}, nil
}

// createStudentFrom copies the admission's demographic fields into a new
// Student keyed by the shared email. The email also links the student to the
// user provisioned at admission creation.
func (s *LifecycleService) createStudentFrom(db *gorm.DB, adm *aModel.NewAdmissionModel) (*sModel.StudentModel, error) {
	var count int64
	if err := db.Model(&sModel.StudentModel{}).Where("email = ?", adm.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("a student with email %s already exists", adm.Email)
	}

	sid := adm.StudentID
	student := &sModel.StudentModel{
		Email:              adm.Email,
		StudentID:          &sid,
		StudentName:        adm.StudentName,
		ParentName:         adm.ParentName,
		DateOfBirth:        adm.DateOfBirth,
		Gender:             adm.Gender,
		Grade:              adm.Grade,
		Address:            adm.Address,
		Category:           adm.Category,
		AdmissionNumber:    adm.AdmissionNumber,
		ParentPhone:        adm.ParentPhone,
		EmergencyContact:   adm.EmergencyContact,
		MedicalInformation: adm.MedicalInformation,
		BloodGroup:         adm.BloodGroup,
		PreviousSchool:     adm.PreviousSchool,
	}
	if err := db.Create(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}
