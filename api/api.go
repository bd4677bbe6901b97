package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/services"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"github.com/MominRaza6762/SamraAi/utils/response"
)

// bodyLimit leaves room for the multipart framing around a maximum size upload
const bodyLimit = services.MaxUploadSize + 1024*1024

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *applog.Logger
}

func NewAPIServer(listenAddress string, log *applog.Logger) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "SamraAI API",
			BodyLimit:    bodyLimit,
			ErrorHandler: errorHandler,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

// errorHandler renders errors no handler answered in the standard failure envelope
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
			return response.Error(c, fiberErr.Code, "File too large. Maximum size is 25MB")
		}
		return response.Error(c, fiberErr.Code, fiberErr.Message)
	}
	return response.InternalServerError(c, "Internal server error", err)
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("Starting API Server", "address", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	s.log.Info("Shutting down API Server")
	return s.app.Shutdown()
}
