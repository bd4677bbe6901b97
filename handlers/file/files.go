package file

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/handlers"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
	"github.com/MominRaza6762/SamraAi/utils/validation"
)

// FileHandler handles file upload requests
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// UploadResponse carries the analysis of an uploaded file
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Type     string `json:"type"`
}

// SessionFilesResponse lists the files of one session, newest first
type SessionFilesResponse struct {
	Success bool               `json:"success"`
	Files   []model.FileUpload `json:"files"`
}

// Upload handles POST /api/file/upload
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	req := services.UploadRequest{
		SessionID: validation.SanitizeString(c.FormValue("sessionId")),
		Prompt:    c.FormValue("prompt"),
	}

	// A missing file is reported by the service together with a missing session
	if fileHeader, err := c.FormFile("file"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return response.InternalServerError(c, "Failed to read uploaded file", err)
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, services.MaxUploadSize+1))
		if err != nil {
			return response.InternalServerError(c, "Failed to read uploaded file", err)
		}

		req.FileName = fileHeader.Filename
		req.MimeType = fileHeader.Header.Get(fiber.HeaderContentType)
		req.Data = data
	}

	result, err := h.fileService.UploadAndAnalyze(c.Context(), req)
	if err != nil {
		return handlers.RespondError(c, err, "Failed to process file")
	}

	return response.OK(c, UploadResponse{
		Success:  true,
		Message:  result.Message,
		FileURL:  result.FileURL,
		FileName: result.FileName,
		Type:     string(result.Type),
	})
}

// ListBySession handles GET /api/file/session/:sessionId
func (h *FileHandler) ListBySession(c *fiber.Ctx) error {
	files, err := h.fileService.ListBySession(c.Context(), validation.SanitizeString(c.Params("sessionId")))
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve files")
	}
	return response.OK(c, SessionFilesResponse{Success: true, Files: files})
}
