package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tradenook/internal/services"
)

const sidCookie = "sid"

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func expireSID(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// directory returns the request's Directory, resolving it from the sid
// cookie on first use. The signed-in user is also put in Locals("user") for
// templates and the access log.
func directory(c *fiber.Ctx, auth *services.AuthService) (*services.Directory, error) {
	if d, ok := c.Locals("dir").(*services.Directory); ok && d != nil {
		return d, nil
	}
	d, err := auth.Directory(c.Cookies(sidCookie))
	if err != nil {
		return nil, err
	}
	c.Locals("dir", d)
	if u := d.CurrentSession(); u != nil {
		c.Locals("user", u)
	}
	return d, nil
}

// Session resolves the caller's Directory before any handler runs.
func Session(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := directory(c, auth); err != nil {
			return err
		}
		return c.Next()
	}
}
