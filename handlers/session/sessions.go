package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/handlers"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
	"github.com/MominRaza6762/SamraAi/utils/validation"
)

// SessionHandler handles session-related requests
type SessionHandler struct {
	validator      *validation.Validator
	sessionService *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		validator:      validation.NewValidator(),
		sessionService: sessionService,
	}
}

// CreateSessionRequest represents the request to create a session
type CreateSessionRequest struct {
	SessionID string `json:"sessionId" validate:"max=255"`
	Title     string `json:"title" validate:"max=255"`
}

// CreateSessionResponse confirms a created session
type CreateSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// SessionsResponse lists sessions, most recently updated first
type SessionsResponse struct {
	Success  bool            `json:"success"`
	Sessions []model.Session `json:"sessions"`
}

// ListSessions handles GET /api/session/all
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := h.sessionService.ListSessions(c.Context())
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve sessions")
	}
	return response.OK(c, SessionsResponse{Success: true, Sessions: sessions})
}

// CreateSession handles POST /api/session/create
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SessionID = validation.SanitizeString(req.SessionID)
	req.Title = validation.SanitizeString(req.Title)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	session, err := h.sessionService.CreateSession(c.Context(), req.SessionID, req.Title)
	if err != nil {
		return handlers.RespondError(c, err, "Failed to create session")
	}

	return response.OK(c, CreateSessionResponse{
		Success:   true,
		SessionID: session.SessionID,
		Message:   "Session created successfully",
	})
}
