package middleware

// roles.go: role-based access control.
// Every authenticated caller may read and score; roster, course and fixture changes
// need an admin, and locking a pairing needs a captain or an admin.

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-cup/internal/models"
)

// RequireRole returns a middleware handler that lets a request through only when the
// caller's role is one of roles, and answers 403 Forbidden otherwise:
//
//	api.Post("/days", middleware.RequireRole(models.RoleAdmin), handlers.CreateDay(svc))
//
// It reads the role Auth stored in c.Locals, so it must be mounted after Auth.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userRole, _ := c.Locals(LocalUserRole).(string)
		if userRole == "" {
			// No role at all means Auth never ran for this route.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		}
		if !allowed[models.Role(userRole)] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}
