package server

import (
	"ripple/internal/auth"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondData writes a success envelope around the payload.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// identityFrom returns the authenticated identity stored by AuthRequired or
// OptionalAuth, if any.
func identityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals("identity").(auth.Identity)
	return identity, ok
}

// statusForError maps an application error to its HTTP status.
func statusForError(err error) int {
	switch {
	case models.IsCode(err, "NOT_FOUND"):
		return fiber.StatusNotFound
	case models.IsCode(err, "VALIDATION_ERROR"):
		return fiber.StatusBadRequest
	case models.IsCode(err, "UNAUTHORIZED"):
		return fiber.StatusUnauthorized
	case models.IsCode(err, "FORBIDDEN"):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
