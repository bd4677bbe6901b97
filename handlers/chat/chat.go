package chat

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/handlers"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/response"
	"github.com/MominRaza6762/SamraAi/utils/validation"
)

// ChatHandler handles chat-related requests
type ChatHandler struct {
	validator   *validation.Validator
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		validator:   validation.NewValidator(),
		chatService: chatService,
	}
}

// SendMessageRequest represents the request to send a chat message
type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId" validate:"max=255"`
}

// SendMessageResponse carries the assistant's reply
type SendMessageResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// HistoryResponse lists the turns of one session, newest first
type HistoryResponse struct {
	Success bool                `json:"success"`
	History []model.ChatMessage `json:"history"`
}

// SendMessage handles POST /api/chat/send
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SessionID = validation.SanitizeString(req.SessionID)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	reply, err := h.chatService.SendMessage(c.Context(), req.SessionID, req.Message)
	if err != nil {
		return handlers.RespondError(c, err, "Failed to process message")
	}

	return response.OK(c, SendMessageResponse{
		Success:   true,
		Message:   reply.Message,
		SessionID: reply.SessionID,
	})
}

// GetHistory handles GET /api/chat/history/:sessionId
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	sessionID := validation.SanitizeString(c.Params("sessionId"))

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = database.DefaultHistoryLimit
	}

	history, err := h.chatService.GetHistory(c.Context(), sessionID, limit)
	if err != nil {
		return handlers.RespondError(c, err, "Failed to retrieve chat history")
	}

	return response.OK(c, HistoryResponse{Success: true, History: history})
}
