package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-shop-admin/internal/apperr"
)

// JSON writes the standard envelope: {"success": bool, ...payload}.
func JSON(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": status < 400}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func OK(c *fiber.Ctx, payload fiber.Map) error {
	return JSON(c, fiber.StatusOK, payload)
}

func Created(c *fiber.Ctx, payload fiber.Map) error {
	return JSON(c, fiber.StatusCreated, payload)
}

func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, fiber.Map{"message": message})
}

// Error converts a service error into the failure envelope. Internal faults
// carry the underlying error text in the "error" field; the API contract
// exposes it to callers as-is.
func Error(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	body := fiber.Map{"message": apperr.Message(err)}
	if status == fiber.StatusInternalServerError {
		var e *apperr.Error
		if errors.As(err, &e) && e.Err != nil {
			body["error"] = e.Err.Error()
		} else {
			body["error"] = err.Error()
		}
	}
	return JSON(c, status, body)
}
