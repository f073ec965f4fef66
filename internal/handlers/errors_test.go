package handlers

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitkit/resume-matcher/internal/repositories"
	"recruitkit/resume-matcher/internal/services"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()

	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, reqErr)
	return resp.StatusCode
}

func TestRespondErrorMapping(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest,
		statusFor(t, services.NewValidationError("bad input")))

	assert.Equal(t, fiber.StatusNotFound,
		statusFor(t, fmt.Errorf("resume abc: %w", repositories.ErrNotFound)))

	assert.Equal(t, fiber.StatusServiceUnavailable,
		statusFor(t, fmt.Errorf("%w: rate limited", services.ErrOracleUnavailable)))

	assert.Equal(t, fiber.StatusInternalServerError,
		statusFor(t, fmt.Errorf("disk on fire")))
}
