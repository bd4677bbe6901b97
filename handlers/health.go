package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/utils/response"
)

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth reports that the process is up
func HandleHealth(c *fiber.Ctx) error {
	return response.OK(c, HealthResponse{
		Success:   true,
		Message:   "SamraAI Backend is running",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// PingResponse is returned by GET /ping
type PingResponse struct {
	Status string `json:"status"`
}

// HandleCheckHealth pings the database. An unreachable database is reported as 503.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(PingResponse{Status: "unhealthy"})
	}
	return response.OK(c, PingResponse{Status: "ok"})
}
