package database

import (
	"log"
	"os"

	"gorm.io/gorm"

	admissionModel "schoolku_backend/internals/features/admissions/admission/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	schoolModel "schoolku_backend/internals/features/schools/school/model"
	studentModel "schoolku_backend/internals/features/students/student/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

// AutoMigrate runs schema migration for every registered model.
// Guarded behind DB_AUTO_MIGRATE so production deploys can manage schema separately.
func AutoMigrate() {
	if os.Getenv("DB_AUTO_MIGRATE") != "true" {
		return
	}
	if err := MigrateAll(DB); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ AutoMigrate done.")
}

func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.RoleModel{},
		&userModel.UserModel{},
		&schoolModel.SchoolModel{},
		&admissionModel.NewAdmissionModel{},
		&studentModel.StudentModel{},
		&feeModel.FeeModel{},
		&feeModel.PaymentHistoryModel{},
	)
}
