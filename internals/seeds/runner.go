package seeds

import (
	"os"

	"gorm.io/gorm"

	schoolSeeds "schoolku_backend/internals/seeds/schools"
	userSeeds "schoolku_backend/internals/seeds/users"

	userService "schoolku_backend/internals/features/users/user/service"
)

// RunAllSeeds is idempotent; every seeder skips rows that already exist.
func RunAllSeeds(db *gorm.DB, roles *userService.RoleRegistry) {
	userSeeds.SeedSuperAdmin(db, roles)

	if path := os.Getenv("SEED_SCHOOLS_FILE"); path != "" {
		schoolSeeds.SeedSchoolsFromJSON(db, path)
	}
}
