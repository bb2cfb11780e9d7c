package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fees/controller"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// FeeRoutes registers the fee ledger endpoints. The gateway webhook is the
// only unauthenticated entry; checkout is open to any signed-in user so
// parents can pay their own fees.
func FeeRoutes(api fiber.Router, db *gorm.DB, jwtSecret string) {
	ctrl := controller.NewFeeController(db)

	fees := api.Group("/fees")
	fees.Post("/webhook", ctrl.HandleGatewayWebhook)

	authed := fees.Group("/", authMw.AuthJWT(authMw.AuthJWTOpts{Secret: jwtSecret}))
	authed.Post("/:id/checkout", ctrl.Checkout)

	staff := authed.Group("/", authMw.RequireRoles(constants.StaffRoles...))
	staff.Post("/", ctrl.CreateFee)
	staff.Get("/", ctrl.GetFees)
	staff.Get("/:id", ctrl.GetFeeByID)
	staff.Post("/:id/record-payment", ctrl.RecordPayment)
	staff.Put("/:id/payment-history/:payment_id", ctrl.UpdatePayment)
	staff.Patch("/:id/payment-history/:payment_id", ctrl.UpdatePayment)
}
