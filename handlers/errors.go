package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
)

// RespondError maps a service error onto the failure envelope.
// Validation errors become 400 with their own message, bad admin credentials 401,
// and anything else 500 with failMessage and the error text.
func RespondError(c *fiber.Ctx, err error, failMessage string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return response.BadRequest(c, validationErr.Message)
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	default:
		return response.InternalServerError(c, failMessage, err)
	}
}
