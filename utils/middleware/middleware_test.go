package middleware

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils/auth"
)

func okHandler(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func TestRequireAdminOpenWhenNotRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", RequireAdmin(nil, false), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireAdminToken(t *testing.T) {
	tokens := auth.NewJWTManager(auth.JWTConfig{Secret: "test-secret", Issuer: "samraai-test"})
	token, _, err := tokens.GenerateAdminToken("admin")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	app := fiber.New()
	app.Get("/admin", RequireAdmin(tokens, true), okHandler)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"bad format", "Token " + token, fiber.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func multipartRequest(t *testing.T, contentType string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.bin"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadFilter(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", UploadFilter("file"), okHandler)

	resp, err := app.Test(multipartRequest(t, "application/zip", []byte("PK")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("zip status = %d, want 400", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid file type") {
		t.Errorf("body = %s", body)
	}

	resp, err = app.Test(multipartRequest(t, "text/plain", []byte("hello")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("text status = %d, want 200", resp.StatusCode)
	}

	// No file at all is left to the handler
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("no file status = %d, want 200", resp.StatusCode)
	}
}

func TestUploadFilterSizeLimit(t *testing.T) {
	app := fiber.New(fiber.Config{BodyLimit: services.MaxUploadSize + 1024*1024})
	app.Post("/upload", UploadFilter("file"), okHandler)

	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{"exactly 25MB", 26214400, fiber.StatusOK},
		{"one byte over", 26214401, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, "text/plain", bytes.Repeat([]byte("a"), tt.size)), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == fiber.StatusBadRequest {
				body, _ := io.ReadAll(resp.Body)
				if !strings.Contains(string(body), "File too large. Maximum size is 25MB") {
					t.Errorf("body = %s", body)
				}
			}
		})
	}
}

// memoryCache is an in-process AttemptCache
type memoryCache struct {
	mu      sync.Mutex
	values  map[string]int64
	expires map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok, nil
}

func (m *memoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expires[key], nil
}

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
	return m.values[key], nil
}

func (m *memoryCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = expiration
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = 1
	m.expires[key] = expiration
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.expires, key)
	}
	return nil
}

func TestBruteForceLockout(t *testing.T) {
	cache := newMemoryCache()
	guard := NewBruteForceProtection(cache)

	app := fiber.New()
	app.Post("/login", guard.CheckLockout(), func(c *fiber.Ctx) error {
		if c.Query("ok") == "1" {
			_ = guard.RecordSuccessfulAttempt(c.Context(), c.IP())
			return c.SendString("ok")
		}
		_ = guard.RecordFailedAttempt(c.Context(), c.IP())
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	login := func(target string) *http.Response {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		return resp
	}

	for i := 0; i < 5; i++ {
		if resp := login("/login"); resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, resp.StatusCode)
		}
	}

	resp := login("/login?ok=1")
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("status after 5 failures = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "120" {
		t.Errorf("Retry-After = %q, want 120", got)
	}

	// Clearing the counters lifts the lock
	for key := range cache.values {
		_ = cache.Delete(context.Background(), key)
	}
	if resp := login("/login?ok=1"); resp.StatusCode != fiber.StatusOK {
		t.Errorf("status after reset = %d, want 200", resp.StatusCode)
	}
}

func TestNilBruteForceAllows(t *testing.T) {
	var guard *BruteForceProtection

	app := fiber.New()
	app.Post("/login", guard.CheckLockout(), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if err := guard.RecordFailedAttempt(context.Background(), "1.2.3.4"); err != nil {
		t.Errorf("RecordFailedAttempt on nil guard: %v", err)
	}
}

func TestMetricsCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	app := fiber.New()
	app.Use(metrics.Handler())
	app.Get("/api/chat/history/:sessionId", okHandler)

	for _, id := range []string{"a", "b"} {
		if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/chat/history/"+id, nil)); err != nil {
			t.Fatalf("request: %v", err)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var total float64
	for _, family := range families {
		if family.GetName() != "samraai_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" && label.GetValue() == "/api/chat/history/:sessionId" {
					total += metric.GetCounter().GetValue()
				}
			}
		}
	}
	if total != 2 {
		t.Errorf("requests counter = %v, want 2", total)
	}
}

func TestSetupSecurityCORS(t *testing.T) {
	app := fiber.New()
	SetupSecurity(app, SecurityConfig{
		AllowedOrigins:    []string{"https://samraai.vercel.app", " "},
		RateLimitRequests: 1,
		DisableAccessLog:  true,
	})
	app.Get("/api/session/all", okHandler)
	app.Get("/api/health", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/session/all", nil)
	req.Header.Set("Origin", "https://samraai.vercel.app")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://samraai.vercel.app" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}

	// Second request from the same IP exceeds the limit of one
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/session/all", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}

	// Health checks skip the limiter
	for i := 0; i < 3; i++ {
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("health status = %d, want 200", resp.StatusCode)
		}
	}
}
