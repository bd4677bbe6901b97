package database

import (
	"context"

	"github.com/MominRaza6762/SamraAi/model"
)

// DefaultHistoryLimit caps chat history reads when no limit is given.
const DefaultHistoryLimit = 100

// Storage defines the interface that all database implementations must satisfy.
// One Storage is opened at process start and handed to every service that reads or
// writes sessions, turns or file records.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Sessions
	CreateSession(ctx context.Context, sessionID, title string) (*model.Session, error)
	EnsureSession(ctx context.Context, sessionID, title string) (bool, error)
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	TouchSession(ctx context.Context, sessionID, title string) (*model.Session, error)
	GetAllSessions(ctx context.Context) ([]model.Session, error)
	CountSessions(ctx context.Context) (int64, error)

	// Chat turns
	SaveChatMessage(ctx context.Context, sessionID, userMessage, botResponse string) (uint, error)
	GetChatHistory(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error)
	GetAllChatHistory(ctx context.Context) ([]model.ChatMessage, error)
	CountChats(ctx context.Context) (int64, error)

	// File records
	SaveFileUpload(ctx context.Context, upload *model.FileUpload) (uint, error)
	GetAllFileUploads(ctx context.Context) ([]model.FileUpload, error)
	GetFileUploadsBySession(ctx context.Context, sessionID string) ([]model.FileUpload, error)
	CountFiles(ctx context.Context) (int64, error)

	// Cron job bookkeeping
	StartCronJob(ctx context.Context, jobName string) (*model.CronJobLog, error)
	FinishCronJob(ctx context.Context, entry *model.CronJobLog, message string, metadata interface{}, jobErr error) error
}
