package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/admissions/admission/controller"
	"schoolku_backend/internals/features/admissions/admission/service"
	userService "schoolku_backend/internals/features/users/user/service"
	"schoolku_backend/internals/middlewares"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// AdmissionRoutes registers the admission lifecycle endpoints.
// Submission is public (rate limited); everything else is staff only.
func AdmissionRoutes(api fiber.Router, db *gorm.DB, roles *userService.RoleRegistry, jwtSecret string) {
	ctrl := controller.NewAdmissionController(db, service.NewLifecycleService(db, roles))

	admissions := api.Group("/admissions")
	admissions.Post("/", middlewares.AdmissionRateLimiter(), ctrl.CreateAdmission)

	guarded := admissions.Group("/",
		authMw.AuthJWT(authMw.AuthJWTOpts{Secret: jwtSecret}),
		authMw.RequireRoles(constants.StaffRoles...),
	)
	guarded.Get("/", ctrl.GetAdmissions)
	guarded.Get("/:id", ctrl.GetAdmissionByID)
	guarded.Put("/:id", ctrl.UpdateAdmission)
	guarded.Patch("/:id", ctrl.UpdateAdmission)
	guarded.Post("/:id/approve", ctrl.ApproveAdmission)
	guarded.Delete("/:id", ctrl.DeleteAdmission)
}
