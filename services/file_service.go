package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/model"
	"github.com/MominRaza6762/SamraAi/services/storage"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

// FileService handles upload, storage and analysis of user files
type FileService struct {
	store     database.Storage
	objects   storage.ObjectStore
	processor *FileProcessor
	userName  string
	log       *applog.Logger
	now       func() time.Time
}

// NewFileService creates a new file service. objects may be nil when storage is not configured.
func NewFileService(store database.Storage, objects storage.ObjectStore, processor *FileProcessor, userName string, log *applog.Logger) *FileService {
	return &FileService{
		store:     store,
		objects:   objects,
		processor: processor,
		userName:  userName,
		log:       log.With("component", "FileService"),
		now:       time.Now,
	}
}

// UploadRequest represents one uploaded file with its instruction
type UploadRequest struct {
	SessionID string
	Prompt    string
	FileName  string
	MimeType  string
	Data      []byte
}

// UploadResult is returned after a file has been stored and analyzed
type UploadResult struct {
	Message  string
	FileURL  string
	FileName string
	Type     AnalysisType
}

// UploadAndAnalyze stores the file, records it, analyzes it and saves the exchange as a chat turn.
// A failed analysis leaves the stored object and its record in place.
func (s *FileService) UploadAndAnalyze(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.FileName == "" || len(req.Data) == 0 || req.SessionID == "" {
		return nil, newValidationError("File and session ID are required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, newValidationError("Please provide a prompt or instruction for the file analysis")
	}
	if !IsAllowedMimeType(req.MimeType) {
		return nil, newValidationError(InvalidFileTypeMessage)
	}
	if len(req.Data) > MaxUploadSize {
		return nil, newValidationError("File too large. Maximum size is 25MB")
	}
	if s.objects == nil {
		return nil, ErrStorageNotConfigured
	}

	key := storage.GenerateKey(req.FileName, req.MimeType, s.now())
	fileURL, err := s.objects.Upload(ctx, key, req.Data, req.MimeType)
	if err != nil {
		return nil, err
	}

	record := &model.FileUpload{
		SessionID: req.SessionID,
		FileName:  req.FileName,
		FileType:  req.MimeType,
		FileURL:   fileURL,
		StorageID: key,
	}
	if _, err := s.store.SaveFileUpload(ctx, record); err != nil {
		// No object may outlive a failed metadata write
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.log.Error("failed to delete orphaned object", "key", key, "error", delErr)
		}
		return nil, err
	}

	result, err := s.processor.Process(ctx, FileInput{
		URL:      fileURL,
		MimeType: req.MimeType,
		FileName: req.FileName,
		Data:     req.Data,
		Prompt:   req.Prompt,
	})
	if err != nil {
		s.log.Error("file analysis failed", "file", req.FileName, "session_id", req.SessionID, "error", err)
		return nil, err
	}

	reply := result.Reply(s.userName)
	userMessage := fmt.Sprintf("[File Upload: %s] %s", req.FileName, req.Prompt)
	if _, err := s.store.SaveChatMessage(ctx, req.SessionID, userMessage, reply); err != nil {
		return nil, err
	}

	s.log.Info("file analyzed", "file", req.FileName, "session_id", req.SessionID, "type", string(result.Type))

	return &UploadResult{
		Message:  reply,
		FileURL:  fileURL,
		FileName: req.FileName,
		Type:     result.Type,
	}, nil
}

// ListBySession returns the files uploaded in one session, newest first
func (s *FileService) ListBySession(ctx context.Context, sessionID string) ([]model.FileUpload, error) {
	if sessionID == "" {
		return nil, newValidationError("Session ID is required")
	}
	return s.store.GetFileUploadsBySession(ctx, sessionID)
}
