package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tradenook/internal/log"
	"tradenook/internal/services"
	"tradenook/internal/validate"
)

// AdminHandler exposes account lookup and moderation.
type AdminHandler struct {
	Auth *services.AuthService
}

// GET /api/v1/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	users, err := d.ListUsers()
	if err != nil {
		return apiError(c, "admin.users.list", err)
	}
	return c.JSON(users)
}

// GET /api/v1/users/:id
func (h *AdminHandler) User(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, "users.get", services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	u, err := d.GetUser(id)
	if err != nil {
		return apiError(c, "users.get", err)
	}
	return c.JSON(u)
}

// PUT /api/v1/users/:id/ban
func (h *AdminHandler) Ban(c *fiber.Ctx) error {
	return h.setBanned(c, true)
}

// PUT /api/v1/users/:id/unban
func (h *AdminHandler) Unban(c *fiber.Ctx) error {
	return h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c *fiber.Ctx, banned bool) error {
	action := "admin.users.unban"
	if banned {
		action = "admin.users.ban"
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, action, services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	if banned {
		err = d.BanUser(id)
	} else {
		err = d.UnbanUser(id)
	}
	if err != nil {
		return apiError(c, action, err)
	}
	applog.Audit(c, action, map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"id": id, "isBanned": banned})
}
