package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/handlers"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/middleware"
	"github.com/MominRaza6762/SamraAi/utils/response"
	"github.com/MominRaza6762/SamraAi/utils/validation"
)

// AdminHandler handles admin dashboard requests
type AdminHandler struct {
	validator    *validation.Validator
	adminService *services.AdminService
	bruteForce   *middleware.BruteForceProtection
}

// NewAdminHandler creates a new admin handler. bruteForce may be nil.
func NewAdminHandler(adminService *services.AdminService, bruteForce *middleware.BruteForceProtection) *AdminHandler {
	return &AdminHandler{
		validator:    validation.NewValidator(),
		adminService: adminService,
		bruteForce:   bruteForce,
	}
}

// LoginRequest represents the admin login request
type LoginRequest struct {
	Username string `json:"username" validate:"max=255"`
	Password string `json:"password" validate:"max=255"`
}

// LoginResponse confirms admin authentication
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ChatsResponse lists every chat turn
type ChatsResponse struct {
	Success bool                `json:"success"`
	Chats   []model.ChatMessage `json:"chats"`
}

// FilesResponse lists every file record
type FilesResponse struct {
	Success bool               `json:"success"`
	Files   []model.FileUpload `json:"files"`
}

// StatsResponse carries the dashboard counts
type StatsResponse struct {
	Success bool                     `json:"success"`
	Stats   *services.DashboardStats `json:"stats"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	token, err := h.adminService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			_ = h.bruteForce.RecordFailedAttempt(c.Context(), c.IP())
		}
		return handlers.RespondError(c, err, "Login failed")
	}
	_ = h.bruteForce.RecordSuccessfulAttempt(c.Context(), c.IP())

	return response.OK(c, LoginResponse{
		Success: true,
		Message: "Admin authenticated successfully",
		Token:   token,
	})
}

// ListChats handles GET /api/admin/chats
func (h *AdminHandler) ListChats(c *fiber.Ctx) error {
	chats, err := h.adminService.ListChats(c.Context())
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve chats")
	}
	return response.OK(c, ChatsResponse{Success: true, Chats: chats})
}

// ListFiles handles GET /api/admin/files
func (h *AdminHandler) ListFiles(c *fiber.Ctx) error {
	files, err := h.adminService.ListFiles(c.Context())
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve files")
	}
	return response.OK(c, FilesResponse{Success: true, Files: files})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.Context())
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve dashboard stats")
	}
	return response.OK(c, StatsResponse{Success: true, Stats: stats})
}
