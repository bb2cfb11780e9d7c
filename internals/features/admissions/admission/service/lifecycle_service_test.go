package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schoolku_backend/internals/databases"
	aModel "schoolku_backend/internals/features/admissions/admission/model"
	sModel "schoolku_backend/internals/features/students/student/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	userService "schoolku_backend/internals/features/users/user/service"
)

var (
	studentIDPattern       = regexp.MustCompile(`^STD-\d{14}-[A-HJ-NP-Z2-9]{4}$`)
	admissionNumberPattern = regexp.MustCompile(`^ADM-\d{4}-\d{6}$`)
)

func newTestService(t *testing.T) (*LifecycleService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateAll(db))

	roles := userService.NewRoleRegistry()
	require.NoError(t, roles.Load(db))

	return NewLifecycleService(db, roles), db
}

func pendingAdmission(email, name string) *aModel.NewAdmissionModel {
	return &aModel.NewAdmissionModel{
		StudentName: name,
		Email:       email,
		Grade:       "3",
		Status:      aModel.AdmissionStatusPending,
	}
}

func TestCreateAdmissionGeneratesIDAndAccount(t *testing.T) {
	svc, db := newTestService(t)

	res, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane.doe@example.com", "Jane Doe"))
	require.NoError(t, err)

	assert.Regexp(t, studentIDPattern, res.Admission.StudentID)
	assert.Equal(t, aModel.AdmissionStatusPending, res.Admission.Status)
	assert.Len(t, res.OneTimePassword, 8)

	assert.Equal(t, "jane.doe", res.User.UserName)
	assert.Equal(t, "jane.doe@example.com", res.User.Email)
	assert.Equal(t, userModel.CredentialOneTimeGenerated, res.User.Credential.PasswordState)
	assert.NoError(t, res.User.Credential.Check(res.OneTimePassword))

	var count int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateAdmissionDerivesSuffixedUsernameOnCollision(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateAdmission(context.Background(), pendingAdmission("sam@one.example.com", "Sam One"))
	require.NoError(t, err)
	second, err := svc.CreateAdmission(context.Background(), pendingAdmission("sam@two.example.com", "Sam Two"))
	require.NoError(t, err)

	assert.Equal(t, "sam", first.User.UserName)
	assert.Equal(t, "sam1", second.User.UserName)
}

func TestCreateAdmissionDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAdmission(context.Background(), pendingAdmission("dup@example.com", "First"))
	require.NoError(t, err)

	_, err = svc.CreateAdmission(context.Background(), pendingAdmission("dup@example.com", "Second"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateAdmissionDuplicateStudentID(t *testing.T) {
	svc, _ := newTestService(t)

	first := pendingAdmission("a@example.com", "A")
	first.StudentID = "STD-20240101000000-AAAA"
	_, err := svc.CreateAdmission(context.Background(), first)
	require.NoError(t, err)

	second := pendingAdmission("b@example.com", "B")
	second.StudentID = "STD-20240101000000-AAAA"
	_, err = svc.CreateAdmission(context.Background(), second)
	assert.ErrorIs(t, err, ErrDuplicateStudentID)
}

func TestCreateAdmissionRequiresEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAdmission(context.Background(), &aModel.NewAdmissionModel{StudentName: "No Mail"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestApproveCreatesStudent(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	res, err := svc.Approve(context.Background(), created.Admission.StudentID)
	require.NoError(t, err)

	assert.Equal(t, aModel.AdmissionStatusApproved, res.Admission.Status)
	require.NotNil(t, res.Admission.AdmissionNumber)
	assert.Regexp(t, admissionNumberPattern, *res.Admission.AdmissionNumber)

	assert.Equal(t, "jane@example.com", res.Student.Email)
	require.NotNil(t, res.Student.StudentID)
	assert.Equal(t, created.Admission.StudentID, *res.Student.StudentID)
	assert.Equal(t, "3", res.Student.Grade)

	var count int64
	require.NoError(t, db.Model(&sModel.StudentModel{}).Where("email = ?", "jane@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApproveTwiceFails(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.Admission.StudentID)
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), created.Admission.StudentID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestApproveUnknownAdmission(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), "STD-00000000000000-XXXX")
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}

func TestApproveRollsBackStatusWhenStudentExists(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	// another student already owns the email
	require.NoError(t, db.Create(&sModel.StudentModel{
		Email:       "jane@example.com",
		StudentName: "Existing Jane",
	}).Error)

	_, err = svc.Approve(context.Background(), created.Admission.StudentID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approval rolled back")

	var adm aModel.NewAdmissionModel
	require.NoError(t, db.Where("student_id = ?", created.Admission.StudentID).First(&adm).Error)
	assert.Equal(t, aModel.AdmissionStatusPending, adm.Status)

	var count int64
	require.NoError(t, db.Model(&sModel.StudentModel{}).Where("email = ?", "jane@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateAppliesFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	updated, approveRes, err := svc.UpdateAdmission(context.Background(), created.Admission.StudentID, func(m *aModel.NewAdmissionModel) {
		m.StudentName = "Jane Renamed"
		m.Grade = "4"
	})
	require.NoError(t, err)
	assert.Nil(t, approveRes)
	assert.Equal(t, "Jane Renamed", updated.StudentName)
	assert.Equal(t, "4", updated.Grade)
	assert.Equal(t, aModel.AdmissionStatusPending, updated.Status)
}

func TestUpdateStatusToApprovedTriggersApproval(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	updated, approveRes, err := svc.UpdateAdmission(context.Background(), created.Admission.StudentID, func(m *aModel.NewAdmissionModel) {
		m.Status = aModel.AdmissionStatusApproved
	})
	require.NoError(t, err)
	require.NotNil(t, approveRes)
	assert.Equal(t, aModel.AdmissionStatusApproved, updated.Status)
	require.NotNil(t, updated.AdmissionNumber)
	assert.Regexp(t, admissionNumberPattern, *updated.AdmissionNumber)
	assert.Equal(t, "jane@example.com", approveRes.Student.Email)

	var count int64
	require.NoError(t, db.Model(&sModel.StudentModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateApprovalFailureRollsBackEverything(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateAdmission(context.Background(), pendingAdmission("jane@example.com", "Jane"))
	require.NoError(t, err)

	require.NoError(t, db.Create(&sModel.StudentModel{
		Email:       "jane@example.com",
		StudentName: "Existing Jane",
	}).Error)

	_, _, err = svc.UpdateAdmission(context.Background(), created.Admission.StudentID, func(m *aModel.NewAdmissionModel) {
		m.StudentName = "Should Not Persist"
		m.Status = aModel.AdmissionStatusApproved
	})
	require.Error(t, err)

	var adm aModel.NewAdmissionModel
	require.NoError(t, db.Where("student_id = ?", created.Admission.StudentID).First(&adm).Error)
	assert.Equal(t, "Jane", adm.StudentName)
	assert.Equal(t, aModel.AdmissionStatusPending, adm.Status)
}

func TestUpdateDuplicateAdmissionNumber(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateAdmission(context.Background(), pendingAdmission("a@example.com", "A"))
	require.NoError(t, err)
	second, err := svc.CreateAdmission(context.Background(), pendingAdmission("b@example.com", "B"))
	require.NoError(t, err)

	num := "ADM-2024-000001"
	_, _, err = svc.UpdateAdmission(context.Background(), first.Admission.StudentID, func(m *aModel.NewAdmissionModel) {
		m.AdmissionNumber = &num
	})
	require.NoError(t, err)

	dup := "ADM-2024-000001"
	_, _, err = svc.UpdateAdmission(context.Background(), second.Admission.StudentID, func(m *aModel.NewAdmissionModel) {
		m.AdmissionNumber = &dup
	})
	assert.ErrorIs(t, err, ErrDuplicateAdmissionNumber)
}

func TestUpdateUnknownAdmission(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.UpdateAdmission(context.Background(), "STD-00000000000000-XXXX", func(m *aModel.NewAdmissionModel) {})
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}
