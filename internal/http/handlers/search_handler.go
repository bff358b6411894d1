package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tradenook/internal/log"
	"tradenook/internal/services"
	"tradenook/internal/validate"
)

// SearchHandler serves the storefront grid with its category and keyword filters.
type SearchHandler struct {
	Auth *services.AuthService
}

// GET /?category=&q=
func (h *SearchHandler) Home(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	cats, err := d.Categories()
	if err != nil {
		return err
	}
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		category = services.AllCategories
	}

	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		return c.Status(fiber.StatusBadRequest).Render("home", fiber.Map{
			"Categories": cats, "Category": category, "Q": "", "Products": nil, "Count": 0,
			"Err": "Search text is too long",
		})
	}

	products, err := d.ListProducts(category, q)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "home", fiber.Map{
		"Categories": cats, "Category": category, "Q": q,
		"Products": products, "Count": len(products),
	})
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
}
