package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
)

// UploadFilter rejects multipart uploads whose declared type or size the file service would refuse.
// Requests without the field pass through so the handler can report the missing file.
func UploadFilter(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			return c.Next()
		}

		if !services.IsAllowedMimeType(fileHeader.Header.Get("Content-Type")) {
			return response.BadRequest(c, services.InvalidFileTypeMessage)
		}
		if fileHeader.Size > services.MaxUploadSize {
			return response.BadRequest(c, "File too large. Maximum size is 25MB")
		}

		return c.Next()
	}
}
