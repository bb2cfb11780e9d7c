package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "schoolku_backend/internals/features/users/auth/controller"
	"schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

/*
Auth routes. Mount: AuthRoutes(app.Group("/api/auth"), db, jwtSecret)
- POST /api/auth/login            (rate-limited)
- POST /api/auth/change-password  (JWT)
- GET  /api/auth/me               (JWT)
*/
func AuthRoutes(r fiber.Router, db *gorm.DB, jwtSecret string) {
	ctl := authController.NewAuthController(db)

	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)

	protected := r.Group("",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: jwtSecret, AllowCookieFallback: true}),
	)
	protected.Post("/change-password", ctl.ChangePassword)
	protected.Get("/me", ctl.Me)
}
