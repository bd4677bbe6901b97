package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/utils/auth"
	"github.com/MominRaza6762/SamraAi/utils/response"
)

// RequireAdmin checks the bearer token issued by admin login.
// When required is false every request passes, matching the open dashboard deployment.
func RequireAdmin(tokens *auth.JWTManager, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !required {
			return c.Next()
		}

		// Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// Store admin identity in context for handlers
		c.Locals("adminUser", claims.Subject)

		return c.Next()
	}
}
