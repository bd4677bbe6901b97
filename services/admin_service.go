package services

import (
	"context"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/utils/auth"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// AdminCredentials are the static admin username and password from configuration
type AdminCredentials struct {
	Username string
	Password string // plain text or bcrypt hash
}

// AdminService backs the admin dashboard
type AdminService struct {
	store       database.Storage
	credentials AdminCredentials
	tokens      *auth.JWTManager
	log         *applog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store database.Storage, credentials AdminCredentials, tokens *auth.JWTManager, log *applog.Logger) *AdminService {
	return &AdminService{
		store:       store,
		credentials: credentials,
		tokens:      tokens,
		log:         log.With("component", "AdminService"),
	}
}

// DashboardStats are the literal table cardinalities at call time
type DashboardStats struct {
	TotalChats    int64 `json:"totalChats"`
	TotalFiles    int64 `json:"totalFiles"`
	TotalSessions int64 `json:"totalSessions"`
}

// Login checks the credentials and issues an admin token
func (s *AdminService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", newValidationError("Username and password are required")
	}
	if !auth.CheckCredentials(s.credentials.Username, s.credentials.Password, username, password) {
		s.log.Warn("admin login rejected", "username", username)
		return "", ErrInvalidCredentials
	}

	token, jti, err := s.tokens.GenerateAdminToken(username)
	if err != nil {
		return "", err
	}
	s.log.Info("admin authenticated", "username", username, "jti", jti)
	return token, nil
}

// ListChats returns every chat turn, newest first
func (s *AdminService) ListChats(ctx context.Context) ([]model.ChatMessage, error) {
	return s.store.GetAllChatHistory(ctx)
}

// ListFiles returns every file record, newest first
func (s *AdminService) ListFiles(ctx context.Context) ([]model.FileUpload, error) {
	return s.store.GetAllFileUploads(ctx)
}

// Stats returns the dashboard counts
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	chats, err := s.store.CountChats(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.store.CountFiles(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.store.CountSessions(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalChats: chats, TotalFiles: files, TotalSessions: sessions}, nil
}
