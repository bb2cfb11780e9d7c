package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/students/student/controller"
	authMw "schoolku_backend/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, jwtSecret string) {
	ctrl := controller.NewStudentController(db)

	students := api.Group("/students",
		authMw.AuthJWT(authMw.AuthJWTOpts{Secret: jwtSecret}),
		authMw.RequireRoles(constants.StaffRoles...),
	)
	students.Get("/", ctrl.GetStudents)
	students.Get("/:email", ctrl.GetStudentByEmail)
	students.Put("/:email", ctrl.UpdateStudent)
	students.Patch("/:email", ctrl.UpdateStudent)
}
