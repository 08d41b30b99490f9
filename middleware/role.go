package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that rejects callers whose role claim
// is not one of the given roles. Roles are immutable after registration,
// so the claim is authoritative and no lookup is needed.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, "Unauthorized: role not found!", nil)
		}

		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, "Permission denied, cannot perform this operation!", nil)
	}
}
