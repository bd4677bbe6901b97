package utils

import (
	"github.com/MominRaza6762/SamraAi/database"
	fiber "github.com/gofiber/fiber/v2"
)

// MakeHTTPHandleFunc adapts a store-aware handler to a fiber handler. Errors are rendered
// in the standard failure envelope with status 500.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Request failed",
				"error":   err.Error(),
			})
		}
		return nil
	}
}
