package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles allows the request only when the token role is in the list.
// Must run after AuthJWT.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocUserRole).(string)
		if role == "" {
			return fiber.NewError(fiber.StatusForbidden, "Role missing from token")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient role")
		}
		return c.Next()
	}
}
