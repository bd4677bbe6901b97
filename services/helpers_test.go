package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/services/openai"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *database.GORMStore {
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

	store := database.NewGORMStore(db, applog.NewNopLogger())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// fakeLLM records every call and answers with canned text
type fakeLLM struct {
	mu sync.Mutex

	reply        string
	transcript   string
	imageURL     string
	err          error
	chatCalls    [][]openai.Message
	transcribed  [][]byte
	imagePrompts []string
}

func (f *fakeLLM) ChatCompletion(_ context.Context, messages []openai.Message, _ ...openai.Option) (*openai.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls = append(f.chatCalls, messages)
	if f.err != nil {
		return nil, f.err
	}
	resp := &openai.ChatResponse{Choices: make([]openai.Choice, 1)}
	resp.Choices[0].Message.Content = f.reply
	return resp, nil
}

func (f *fakeLLM) Transcribe(_ context.Context, audio []byte, _ string, _ ...openai.TranscriptionOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcribed = append(f.transcribed, audio)
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

func (f *fakeLLM) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imagePrompts = append(f.imagePrompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.imageURL, nil
}

// lastUserContent returns the text of the final message of the last chat call
func (f *fakeLLM) lastUserContent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.chatCalls) == 0 {
		return ""
	}
	call := f.chatCalls[len(f.chatCalls)-1]
	return call[len(call)-1].Content
}

// fakeObjectStore keeps uploaded objects in memory
type fakeObjectStore struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) HealthCheck(context.Context) error {
	return nil
}

var errModelDown = errors.New("model unavailable")

func newTestAssistant(llm *fakeLLM) *Assistant {
	return NewAssistant(llm, DefaultPersona(), applog.NewNopLogger())
}
