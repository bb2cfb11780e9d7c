package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	userController "schoolku_backend/internals/features/users/user/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

/*
User management routes (admin only). Mount: UserRoutes(app.Group("/api/users"), db, jwtSecret)
- GET /api/users
- GET /api/users/:id
*/
func UserRoutes(r fiber.Router, db *gorm.DB, jwtSecret string) {
	ctl := userController.NewUserController(db)

	admin := r.Group("",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: jwtSecret, AllowCookieFallback: true}),
		authMiddleware.RequireRoles(constants.AdminRoles...),
	)
	admin.Get("/", ctl.GetUsers)
	admin.Get("/:id", ctl.GetUserByID)
}
