package services

import (
	"context"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services/openai"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// ChatResponder is implemented by *Assistant
type ChatResponder interface {
	GenerateChatResponse(ctx context.Context, message string, history []openai.Message) (string, error)
}

// ChatService handles chat turns
type ChatService struct {
	store     database.Storage
	responder ChatResponder
	log       *applog.Logger
}

// NewChatService creates a new chat service
func NewChatService(store database.Storage, responder ChatResponder, log *applog.Logger) *ChatService {
	return &ChatService{
		store:     store,
		responder: responder,
		log:       log.With("component", "ChatService"),
	}
}

// ChatReply is the assistant's answer to one message
type ChatReply struct {
	Message   string
	SessionID string
}

// SendMessage answers message within the session, creating the session on first use.
// Concurrent messages to one session are not serialized.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	if message == "" || sessionID == "" {
		return nil, newValidationError("Message and session ID are required")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	title := model.DefaultSessionTitle
	if session != nil && session.Title != "" {
		title = session.Title
	}
	if session == nil {
		created, err := s.store.EnsureSession(ctx, sessionID, title)
		if err != nil {
			return nil, err
		}
		if created {
			s.log.Info("created session", "session_id", sessionID)
		}
	}

	history, err := s.store.GetChatHistory(ctx, sessionID, database.DefaultHistoryLimit)
	if err != nil {
		return nil, err
	}

	reply, err := s.responder.GenerateChatResponse(ctx, message, conversationContext(history))
	if err != nil {
		return nil, err
	}

	if _, err := s.store.SaveChatMessage(ctx, sessionID, message, reply); err != nil {
		return nil, err
	}
	if _, err := s.store.TouchSession(ctx, sessionID, title); err != nil {
		return nil, err
	}

	return &ChatReply{Message: reply, SessionID: sessionID}, nil
}

// conversationContext turns newest-first turns into chronological user/assistant messages
func conversationContext(history []model.ChatMessage) []openai.Message {
	messages := make([]openai.Message, 0, len(history)*2)
	for i := len(history) - 1; i >= 0; i-- {
		messages = append(messages,
			openai.TextMessage(string(model.MessageRoleUser), history[i].UserMessage),
			openai.TextMessage(string(model.MessageRoleAssistant), history[i].BotResponse),
		)
	}
	return messages
}

// GetHistory returns up to limit turns of a session, newest first.
// An unknown session yields an empty list.
func (s *ChatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	if sessionID == "" {
		return nil, newValidationError("Session ID is required")
	}
	return s.store.GetChatHistory(ctx, sessionID, limit)
}
