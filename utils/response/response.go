package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the failure envelope shared by every endpoint.
// Error carries the underlying error text verbatim when there is one.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// OK writes a 200 response with the given typed payload
func OK(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Success: false,
		Message: message,
	})
}

// ErrorWithDetails returns an error response carrying the raw error text
func ErrorWithDetails(c *fiber.Ctx, statusCode int, message string, err error) error {
	resp := ErrorResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(statusCode).JSON(resp)
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a 500 response with the underlying error passed through
func InternalServerError(c *fiber.Ctx, message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	return ErrorWithDetails(c, fiber.StatusInternalServerError, message, err)
}
