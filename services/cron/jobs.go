package cron

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// UsageSnapshot is stored as the metadata of a usage statistics run
type UsageSnapshot struct {
	TotalChats    int64     `json:"total_chats"`
	TotalFiles    int64     `json:"total_files"`
	TotalSessions int64     `json:"total_sessions"`
	TakenAt       time.Time `json:"taken_at"`
}

// AggregateUsageStatistics counts chats, files and sessions
func (m *CronManager) AggregateUsageStatistics(ctx context.Context) (string, interface{}, error) {
	chats, err := m.store.CountChats(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to count chats: %w", err)
	}
	files, err := m.store.CountFiles(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to count files: %w", err)
	}
	sessions, err := m.store.CountSessions(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	snapshot := UsageSnapshot{
		TotalChats:    chats,
		TotalFiles:    files,
		TotalSessions: sessions,
		TakenAt:       time.Now().UTC(),
	}
	message := fmt.Sprintf("%d chats, %d files, %d sessions", chats, files, sessions)
	return message, snapshot, nil
}

// DependencyStatus is stored as the metadata of a health check run
type DependencyStatus struct {
	Database      string `json:"database"`
	ObjectStorage string `json:"object_storage"`
}

// CheckDependencies pings the database and object storage. The run fails if either is down.
func (m *CronManager) CheckDependencies(ctx context.Context) (string, interface{}, error) {
	status := DependencyStatus{Database: "ok", ObjectStorage: "not_configured"}
	var errs []error

	if err := m.store.HealthCheck(); err != nil {
		status.Database = "down"
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if m.objects != nil {
		status.ObjectStorage = "ok"
		if err := m.objects.HealthCheck(ctx); err != nil {
			status.ObjectStorage = "down"
			errs = append(errs, fmt.Errorf("object storage: %w", err))
		}
	}

	message := fmt.Sprintf("database %s, object storage %s", status.Database, status.ObjectStorage)
	return message, status, errors.Join(errs...)
}
