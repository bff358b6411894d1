package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "tradenook/internal/log"
	"tradenook/internal/services"
)

const friendlyError = "Something went wrong. Please try again."

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrBadCreds):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrBanned):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrPaymentDeclined):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

// apiError answers an API request that the core refused. Unexpected errors
// go to the ErrorHandler untouched.
func apiError(c *fiber.Ctx, action string, err error) error {
	code := statusFor(err)
	switch code {
	case fiber.StatusInternalServerError:
		return err
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		applog.Security(c, "access.denied."+action, map[string]any{"reason": err.Error()})
	default:
		applog.Security(c, action+".fail", map[string]any{"reason": err.Error()})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + field})
}

// ErrorHandler logs the failure and answers with a message that never
// carries internal details. API callers get JSON, browsers the notfound page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
