package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	admissionRoute "schoolku_backend/internals/features/admissions/admission/route"
	feeRoute "schoolku_backend/internals/features/finance/fees/route"
	schoolRoute "schoolku_backend/internals/features/schools/school/route"
	studentRoute "schoolku_backend/internals/features/students/student/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	userRoute "schoolku_backend/internals/features/users/user/route"
	userService "schoolku_backend/internals/features/users/user/service"
)

// SetupRoutes mounts every feature under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, roles *userService.RoleRegistry, jwtSecret string) {
	api := app.Group("/api")

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(api.Group("/auth"), db, jwtSecret)

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(api.Group("/users"), db, jwtSecret)

	log.Println("[INFO] Mounting Admission routes...")
	admissionRoute.AdmissionRoutes(api, db, roles, jwtSecret)

	log.Println("[INFO] Mounting Student routes...")
	studentRoute.StudentRoutes(api, db, jwtSecret)

	log.Println("[INFO] Mounting Fee routes...")
	feeRoute.FeeRoutes(api, db, jwtSecret)

	log.Println("[INFO] Mounting School routes...")
	schoolRoute.SchoolRoutes(api, db, jwtSecret)
}
