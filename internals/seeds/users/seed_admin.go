package users

import (
	"log"
	"os"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/features/users/user/service"
)

// SeedSuperAdmin creates the bootstrap super admin when the users table has
// none. Email and password come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD;
// without both it logs and skips.
func SeedSuperAdmin(db *gorm.DB, roles *service.RoleRegistry) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[INFO] SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping super admin seed")
		return
	}

	role, err := roles.MustGet(constants.RoleSuperAdmin)
	if err != nil {
		log.Printf("[ERROR] seed super admin: %v", err)
		return
	}

	var count int64
	if err := db.Model(&model.UserModel{}).Where("role_id = ?", role.RoleID).Count(&count).Error; err != nil {
		log.Printf("[ERROR] seed super admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	cred, err := model.NewUserSetCredential(password)
	if err != nil {
		log.Printf("[ERROR] seed super admin: %v", err)
		return
	}

	admin := model.UserModel{
		UserName:   "superadmin",
		Email:      email,
		RoleID:     &role.RoleID,
		Credential: cred,
		IsActive:   true,
		IsVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] seed super admin: %v", err)
		return
	}
	log.Printf("[INFO] Seeded super admin %s", email)
}
