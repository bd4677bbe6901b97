package services

import (
	"context"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/model"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// SessionService handles conversation sessions
type SessionService struct {
	store database.Storage
	log   *applog.Logger
}

// NewSessionService creates a new session service
func NewSessionService(store database.Storage, log *applog.Logger) *SessionService {
	return &SessionService{
		store: store,
		log:   log.With("component", "SessionService"),
	}
}

// ListSessions returns every session, most recently updated first
func (s *SessionService) ListSessions(ctx context.Context) ([]model.Session, error) {
	return s.store.GetAllSessions(ctx)
}

// CreateSession creates a session with the client-generated id. Title defaults to "New Chat".
func (s *SessionService) CreateSession(ctx context.Context, sessionID, title string) (*model.Session, error) {
	if sessionID == "" {
		return nil, newValidationError("Session ID is required")
	}
	session, err := s.store.CreateSession(ctx, sessionID, title)
	if err != nil {
		return nil, err
	}
	s.log.Info("created session", "session_id", sessionID)
	return session, nil
}
