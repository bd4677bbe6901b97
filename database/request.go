package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MominRaza6762/SamraAi/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func normalizeTitle(title string) string {
	if title == "" {
		return model.DefaultSessionTitle
	}
	return title
}

// CreateSession inserts a new session. A duplicate session id is returned as an error.
func (s *GORMStore) CreateSession(ctx context.Context, sessionID, title string) (*model.Session, error) {
	session := &model.Session{
		SessionID: sessionID,
		Title:     normalizeTitle(title),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// EnsureSession creates the session when it does not exist yet and reports whether it did.
// A concurrent insert of the same id is not an error.
func (s *GORMStore) EnsureSession(ctx context.Context, sessionID, title string) (bool, error) {
	session := &model.Session{
		SessionID: sessionID,
		Title:     normalizeTitle(title),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "session_id"}}, DoNothing: true}).
		Create(session)
	if result.Error != nil {
		return false, fmt.Errorf("ensure session: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// GetSession returns nil without error when the session does not exist
func (s *GORMStore) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// TouchSession sets the title and bumps updated_at, creating the session if needed.
// Concurrent writers are not serialized; the last one wins.
func (s *GORMStore) TouchSession(ctx context.Context, sessionID, title string) (*model.Session, error) {
	now := time.Now()
	title = normalizeTitle(title)
	session := &model.Session{
		SessionID: sessionID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"title":      title,
				"updated_at": now,
			}),
		}).
		Create(session).Error
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return s.GetSession(ctx, sessionID)
}

// GetAllSessions returns every session, most recently updated first
func (s *GORMStore) GetAllSessions(ctx context.Context) ([]model.Session, error) {
	sessions := []model.Session{}
	err := s.db.WithContext(ctx).Order("updated_at DESC").Order("id DESC").Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *GORMStore) CountSessions(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Session{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// SaveChatMessage appends one turn and returns its id
func (s *GORMStore) SaveChatMessage(ctx context.Context, sessionID, userMessage, botResponse string) (uint, error) {
	msg := &model.ChatMessage{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: botResponse,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return 0, fmt.Errorf("save chat message: %w", err)
	}
	return msg.ID, nil
}

// GetChatHistory returns up to limit turns of a session, newest first.
// An unknown session yields an empty slice.
func (s *GORMStore) GetChatHistory(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	history := []model.ChatMessage{}
	err := newestFirst(s.db.WithContext(ctx)).
		Where("session_id = ?", sessionID).
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}
	return history, nil
}

// GetAllChatHistory returns every turn across all sessions, newest first
func (s *GORMStore) GetAllChatHistory(ctx context.Context) ([]model.ChatMessage, error) {
	chats := []model.ChatMessage{}
	if err := newestFirst(s.db.WithContext(ctx)).Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("get all chat history: %w", err)
	}
	return chats, nil
}

func (s *GORMStore) CountChats(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ChatMessage{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chats: %w", err)
	}
	return count, nil
}

// SaveFileUpload stores file metadata and returns its id
func (s *GORMStore) SaveFileUpload(ctx context.Context, upload *model.FileUpload) (uint, error) {
	if err := s.db.WithContext(ctx).Create(upload).Error; err != nil {
		return 0, fmt.Errorf("save file upload: %w", err)
	}
	return upload.ID, nil
}

// GetAllFileUploads returns every file record, newest first
func (s *GORMStore) GetAllFileUploads(ctx context.Context) ([]model.FileUpload, error) {
	files := []model.FileUpload{}
	if err := newestFirst(s.db.WithContext(ctx)).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("get all file uploads: %w", err)
	}
	return files, nil
}

// GetFileUploadsBySession returns the file records of one session, newest first
func (s *GORMStore) GetFileUploadsBySession(ctx context.Context, sessionID string) ([]model.FileUpload, error) {
	files := []model.FileUpload{}
	err := newestFirst(s.db.WithContext(ctx)).
		Where("session_id = ?", sessionID).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("get file uploads by session: %w", err)
	}
	return files, nil
}

func (s *GORMStore) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.FileUpload{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}

// StartCronJob records the start of a scheduled job run
func (s *GORMStore) StartCronJob(ctx context.Context, jobName string) (*model.CronJobLog, error) {
	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronJobStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("start cron job log: %w", err)
	}
	return entry, nil
}

// FinishCronJob marks a job run completed, or failed when jobErr is set
func (s *GORMStore) FinishCronJob(ctx context.Context, entry *model.CronJobLog, message string, metadata interface{}, jobErr error) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       model.CronJobStatusCompleted,
		"completed_at": now,
		"duration":     now.Sub(entry.StartedAt).Milliseconds(),
		"message":      message,
	}
	if jobErr != nil {
		updates["status"] = model.CronJobStatusFailed
		updates["error_msg"] = jobErr.Error()
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal cron metadata: %w", err)
		}
		updates["metadata"] = datatypes.JSON(raw)
	}

	err := s.db.WithContext(ctx).Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("finish cron job log: %w", err)
	}
	return nil
}
