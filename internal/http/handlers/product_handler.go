package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tradenook/internal/domain"
	"tradenook/internal/log"
	"tradenook/internal/services"
	"tradenook/internal/validate"
)

type ProductHandler struct {
	Auth *services.AuthService
}

// GET /api/v1/products?category=&query=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("query"))
	if !ok {
		return badRequest(c, "query")
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	products, err := d.ListProducts(strings.TrimSpace(c.Query("category")), q)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, "products.get", services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	p, err := d.GetProduct(id)
	if err != nil {
		return apiError(c, "products.get", err)
	}
	return c.JSON(p)
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	if d.CurrentSession() == nil {
		return apiError(c, "listing.create", services.ErrUnauthenticated)
	}
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	in, bad := validate.Listing(in)
	if bad != "" {
		return badRequest(c, bad)
	}

	p, err := d.CreateProduct(in)
	if err != nil {
		return apiError(c, "listing.create", err)
	}
	log.Audit(c, "listing.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/products/:id/pay
func (h *ProductHandler) Pay(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, "listing.pay", services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	rcpt, err := d.ConfirmPayment(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentDeclined) {
			log.Security(c, "listing.pay.declined", map[string]any{"product": id})
		}
		return apiError(c, "listing.pay", err)
	}

	out := fiber.Map{"id": id, "isPaid": true}
	if rcpt.ID != "" {
		out["receipt"] = rcpt
		log.Audit(c, "listing.pay", map[string]any{"product": id, "receipt": rcpt.ID, "amount": rcpt.Amount})
	}
	return c.JSON(out)
}

// PUT /api/v1/products/:id/sold
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, "listing.sold", services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	if err := d.MarkSold(id); err != nil {
		return apiError(c, "listing.sold", err)
	}
	log.Audit(c, "listing.sold", map[string]any{"product": id})
	return c.JSON(fiber.Map{"id": id, "isSold": true})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return apiError(c, "listing.delete", services.ErrNotFound)
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	if err := d.DeleteProduct(id); err != nil {
		return apiError(c, "listing.delete", err)
	}
	log.Audit(c, "listing.delete", map[string]any{"product": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/me/listings
func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	products, err := d.MyListings()
	if err != nil {
		return apiError(c, "me.listings", err)
	}
	return c.JSON(products)
}

// GET /product/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	d, err := directory(c, h.Auth)
	if err != nil {
		return err
	}
	p, err := d.GetProduct(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	return render(c, "product", fiber.Map{"P": p})
}
