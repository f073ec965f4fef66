package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses:
// validation 400, missing records 404, oracle outage 503, everything else
// 500.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Message,
		})
	}

	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if errors.Is(err, services.ErrOracleUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
