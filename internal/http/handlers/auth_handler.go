package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tradenook/internal/log"
	"tradenook/internal/services"
	"tradenook/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

const badLogin = "Invalid email or password"

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	username, ok := validate.Username(in.Username)
	if !ok {
		return badRequest(c, "username")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return badRequest(c, "email")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password")
	}

	sid := ensureSID(c)
	u, err := h.Auth.Register(sid, username, email, in.Password)
	if err != nil {
		return apiError(c, "auth.register", err)
	}
	c.Locals("user", u)
	log.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	email, ok := validate.Email(in.Email)
	if !ok || !validate.Password(in.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": badLogin})
	}

	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, email, in.Password)
	switch {
	case errors.Is(err, services.ErrBanned):
		log.Security(c, "auth.login.banned", map[string]any{"email": email})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case services.IsExpected(err):
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": badLogin})
	case err != nil:
		return err
	}

	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(u)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(sidCookie); sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			return err
		}
	}
	expireSID(c)
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	u := d.CurrentSession()
	if u == nil {
		return apiError(c, "me", services.ErrUnauthenticated)
	}
	return c.JSON(u)
}
