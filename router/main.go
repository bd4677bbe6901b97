package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/handlers"
	admin_handlers "github.com/MominRaza6762/SamraAi/handlers/admin"
	chat_handlers "github.com/MominRaza6762/SamraAi/handlers/chat"
	file_handlers "github.com/MominRaza6762/SamraAi/handlers/file"
	image_handlers "github.com/MominRaza6762/SamraAi/handlers/image"
	session_handlers "github.com/MominRaza6762/SamraAi/handlers/session"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/utils"
	"github.com/MominRaza6762/SamraAi/utils/auth"
	"github.com/MominRaza6762/SamraAi/utils/middleware"
)

// Dependencies are the services and middleware state the routes are built from
type Dependencies struct {
	Store     database.Storage
	Chat      *services.ChatService
	Sessions  *services.SessionService
	Files     *services.FileService
	Admin     *services.AdminService
	Assistant *services.Assistant

	Tokens            *auth.JWTManager
	RequireAdminToken bool
	// BruteForce is nil when Redis is not configured
	BruteForce *middleware.BruteForceProtection

	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Handler())
	}

	// Initialize handlers
	chatHandler := chat_handlers.NewChatHandler(deps.Chat)
	fileHandler := file_handlers.NewFileHandler(deps.Files)
	sessionHandler := session_handlers.NewSessionHandler(deps.Sessions)
	adminHandler := admin_handlers.NewAdminHandler(deps.Admin, deps.BruteForce)
	imageHandler := image_handlers.NewImageHandler(deps.Assistant)

	// Probes
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/health", handlers.HandleHealth)

	// Chat routes
	chat := api.Group("/chat")
	chat.Post("/send", chatHandler.SendMessage)
	chat.Get("/history/:sessionId", chatHandler.GetHistory)

	// File routes
	file := api.Group("/file")
	file.Post("/upload", middleware.UploadFilter("file"), fileHandler.Upload)
	file.Get("/session/:sessionId", fileHandler.ListBySession)

	// Image routes
	image := api.Group("/image")
	image.Post("/generate", imageHandler.Generate)

	// Session routes
	session := api.Group("/session")
	session.Get("/all", sessionHandler.ListSessions)
	session.Post("/create", sessionHandler.CreateSession)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/login", deps.BruteForce.CheckLockout(), adminHandler.Login)

	requireAdmin := middleware.RequireAdmin(deps.Tokens, deps.RequireAdminToken)
	admin.Get("/chats", requireAdmin, adminHandler.ListChats)
	admin.Get("/files", requireAdmin, adminHandler.ListFiles)
	admin.Get("/stats", requireAdmin, adminHandler.Stats)
}
