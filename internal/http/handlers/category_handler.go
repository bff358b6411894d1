package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradenook/internal/services"
)

type CategoryHandler struct {
	Auth *services.AuthService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	cats, err := d.Categories()
	if err != nil {
		return err
	}
	return c.JSON(cats)
}
