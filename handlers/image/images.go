package image

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/handlers"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
	"github.com/MominRaza6762/SamraAi/utils/validation"
)

// ImageGenerator is implemented by *services.Assistant
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ImageHandler handles image generation requests
type ImageHandler struct {
	validator *validation.Validator
	generator ImageGenerator
}

// NewImageHandler creates a new image handler
func NewImageHandler(generator ImageGenerator) *ImageHandler {
	return &ImageHandler{
		validator: validation.NewValidator(),
		generator: generator,
	}
}

// GenerateImageRequest represents the request to generate an image
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"max=4000"`
}

// GenerateImageResponse carries the URL of the generated image
type GenerateImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// Generate handles POST /api/image/generate
func (h *ImageHandler) Generate(c *fiber.Ctx) error {
	var req GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Prompt = validation.SanitizeString(req.Prompt)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	url, err := h.generator.GenerateImage(c.Context(), req.Prompt)
	if err != nil {
		return handlers.RespondError(c, err, "Failed to generate image")
	}

	return response.OK(c, GenerateImageResponse{Success: true, ImageURL: url})
}

var _ ImageGenerator = (*services.Assistant)(nil)
