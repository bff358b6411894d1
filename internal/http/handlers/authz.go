package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tradenook/internal/log"
	"tradenook/internal/services"
)

// RequireAdmin lets only signed-in admins through.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := directory(c, auth)
		if err != nil {
			return err
		}
		u := d.CurrentSession()
		if u == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "signed out"})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrUnauthenticated.Error()})
		}
		if !services.IsAdmin(u) {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is signed in.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := directory(c, auth)
		if err != nil {
			return err
		}
		if d.CurrentSession() == nil {
			applog.Security(c, "access.denied.session", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrUnauthenticated.Error()})
		}
		return c.Next()
	}
}
