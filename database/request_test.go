package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MominRaza6762/SamraAi/model"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := NewGORMStore(db, applog.NewNopLogger())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateSessionDefaultsTitle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := store.CreateSession(ctx, "abc123", "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if session.Title != model.DefaultSessionTitle {
		t.Errorf("Title = %q, want %q", session.Title, model.DefaultSessionTitle)
	}

	if _, err := store.CreateSession(ctx, "abc123", "Again"); err == nil {
		t.Error("expected duplicate session id to fail")
	}
}

func TestGetSessionMissing(t *testing.T) {
	store := newTestStore(t)

	session, err := store.GetSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session, got %+v", session)
	}
}

func TestEnsureSessionCreatesOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.EnsureSession(ctx, "s1", "")
	if err != nil || !created {
		t.Fatalf("first EnsureSession = %v, %v; want true, nil", created, err)
	}
	created, err = store.EnsureSession(ctx, "s1", "Other")
	if err != nil || created {
		t.Fatalf("second EnsureSession = %v, %v; want false, nil", created, err)
	}

	count, _ := store.CountSessions(ctx)
	if count != 1 {
		t.Errorf("CountSessions = %d, want 1", count)
	}
}

func TestTouchSessionBumpsUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original, err := store.CreateSession(ctx, "s1", "Physics")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	touched, err := store.TouchSession(ctx, "s1", "Physics")
	if err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if !touched.UpdatedAt.After(original.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped: %v <= %v", touched.UpdatedAt, original.UpdatedAt)
	}
	if touched.Title != "Physics" {
		t.Errorf("Title = %q, want Physics", touched.Title)
	}

	// Touching an unknown id creates it.
	created, err := store.TouchSession(ctx, "s2", "")
	if err != nil {
		t.Fatalf("TouchSession new: %v", err)
	}
	if created == nil || created.Title != model.DefaultSessionTitle {
		t.Errorf("unexpected session %+v", created)
	}
}

func TestGetAllSessionsOrderedByUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.CreateSession(ctx, id, ""); err != nil {
			t.Fatalf("CreateSession %s: %v", id, err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.TouchSession(ctx, "a", ""); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}

	sessions, err := store.GetAllSessions(ctx)
	if err != nil {
		t.Fatalf("GetAllSessions: %v", err)
	}
	got := ""
	for _, s := range sessions {
		got += s.SessionID
	}
	if got != "acb" {
		t.Errorf("order = %q, want acb", got)
	}
}

func TestGetChatHistoryNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.SaveChatMessage(ctx, "s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)); err != nil {
			t.Fatalf("SaveChatMessage: %v", err)
		}
	}
	if _, err := store.SaveChatMessage(ctx, "other", "x", "y"); err != nil {
		t.Fatalf("SaveChatMessage: %v", err)
	}

	history, err := store.GetChatHistory(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("GetChatHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len = %d, want 3", len(history))
	}
	for i, want := range []string{"q4", "q3", "q2"} {
		if history[i].UserMessage != want {
			t.Errorf("history[%d] = %q, want %q", i, history[i].UserMessage, want)
		}
	}

	all, err := store.GetChatHistory(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("GetChatHistory default limit: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("len = %d, want 5", len(all))
	}
}

func TestGetChatHistoryUnknownSessionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	history, err := store.GetChatHistory(context.Background(), "missing", 0)
	if err != nil {
		t.Fatalf("GetChatHistory: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", history)
	}
}

func TestFileUploadsAndCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.pdf"} {
		_, err := store.SaveFileUpload(ctx, &model.FileUpload{
			SessionID: "s1",
			FileName:  name,
			FileType:  "application/pdf",
			FileURL:   "https://cdn.example/" + name,
			StorageID: "samraai/raw/" + name,
		})
		if err != nil {
			t.Fatalf("SaveFileUpload: %v", err)
		}
	}
	if _, err := store.SaveFileUpload(ctx, &model.FileUpload{SessionID: "s2", FileName: "c.txt"}); err != nil {
		t.Fatalf("SaveFileUpload: %v", err)
	}

	bySession, err := store.GetFileUploadsBySession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetFileUploadsBySession: %v", err)
	}
	if len(bySession) != 2 || bySession[0].FileName != "b.pdf" {
		t.Errorf("unexpected session files %+v", bySession)
	}

	all, err := store.GetAllFileUploads(ctx)
	if err != nil {
		t.Fatalf("GetAllFileUploads: %v", err)
	}
	if len(all) != 3 || all[0].FileName != "c.txt" {
		t.Errorf("unexpected files %+v", all)
	}

	files, _ := store.CountFiles(ctx)
	chats, _ := store.CountChats(ctx)
	if files != 3 || chats != 0 {
		t.Errorf("counts = files %d chats %d, want 3 and 0", files, chats)
	}
}

func TestCronJobLogLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry, err := store.StartCronJob(ctx, "usage_statistics")
	if err != nil {
		t.Fatalf("StartCronJob: %v", err)
	}
	if err := store.FinishCronJob(ctx, entry, "done", map[string]int64{"total_chats": 2}, nil); err != nil {
		t.Fatalf("FinishCronJob: %v", err)
	}

	failed, err := store.StartCronJob(ctx, "dependency_health")
	if err != nil {
		t.Fatalf("StartCronJob: %v", err)
	}
	if err := store.FinishCronJob(ctx, failed, "", nil, errors.New("bucket unreachable")); err != nil {
		t.Fatalf("FinishCronJob: %v", err)
	}

	var logs []model.CronJobLog
	if err := store.db.Order("id").Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("len = %d, want 2", len(logs))
	}
	if logs[0].Status != model.CronJobStatusCompleted || logs[0].CompletedAt == nil {
		t.Errorf("first log = %+v", logs[0])
	}
	if logs[1].Status != model.CronJobStatusFailed || logs[1].ErrorMsg != "bucket unreachable" {
		t.Errorf("second log = %+v", logs[1])
	}
}
