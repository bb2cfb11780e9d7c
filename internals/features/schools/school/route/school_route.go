package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/schools/school/controller"
	authMw "schoolku_backend/internals/middlewares/auth"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB, jwtSecret string) {
	ctrl := controller.NewSchoolController(db)

	schools := api.Group("/schools",
		authMw.AuthJWT(authMw.AuthJWTOpts{Secret: jwtSecret}),
	)
	schools.Get("/", ctrl.GetSchools)
	schools.Get("/:id", ctrl.GetSchoolByID)

	admin := schools.Group("/", authMw.RequireRoles(constants.RoleSuperAdmin))
	admin.Post("/", ctrl.CreateSchool)
	admin.Put("/:id", ctrl.UpdateSchool)
	admin.Patch("/:id", ctrl.UpdateSchool)
	admin.Delete("/:id", ctrl.DeleteSchool)
}
