package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MominRaza6762/SamraAi/api"
	"github.com/MominRaza6762/SamraAi/config"
	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/router"
	"github.com/MominRaza6762/SamraAi/services"
	"github.com/MominRaza6762/SamraAi/services/cron"
	"github.com/MominRaza6762/SamraAi/services/openai"
	"github.com/MominRaza6762/SamraAi/services/storage"
	"github.com/MominRaza6762/SamraAi/utils/auth"
	"github.com/MominRaza6762/SamraAi/utils/cache"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"github.com/MominRaza6762/SamraAi/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log, err := applog.NewLogger(getEnv.GO_ENV)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv, log)
	if err != nil {
		log.Error("Check whether the Postgres is running or not", "error", err)
		return err
	}

	if err := store.Init(); err != nil {
		log.Error("Failed to initialize database tables", "error", err)
		return err
	}

	// Object storage is optional; uploads fail until it is configured
	var objects storage.ObjectStore
	if getEnv.StorageConfigured() {
		s3Store, err := storage.NewS3Store(storage.Config{
			AccessKey: getEnv.STORAGE_ACCESS_KEY,
			SecretKey: getEnv.STORAGE_SECRET_KEY,
			Bucket:    getEnv.STORAGE_BUCKET,
			Region:    getEnv.STORAGE_REGION,
			Endpoint:  getEnv.STORAGE_ENDPOINT,
			CDNURL:    getEnv.STORAGE_CDN_URL,
		})
		if err != nil {
			return err
		}
		objects = s3Store
	} else {
		log.Warn("Object storage is not configured, file uploads are disabled")
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store, objects, log)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("Failed to start cron jobs", "error", err)
			cronManager = nil
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	deps, closeDeps := buildDependencies(getEnv, store, objects, log)
	defer closeDeps()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), log)
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Minute,
	})

	// Setup Routes
	router.SetupRoutes(app, deps)

	// Stop on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		if err := server.Shutdown(); err != nil {
			log.Error("Server shutdown failed", "error", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}

// buildDependencies wires the model client, services and middleware state.
// The returned func releases the Redis connection when there is one.
func buildDependencies(env *config.EnvironmentVariable, store database.Storage, objects storage.ObjectStore, log *applog.Logger) (router.Dependencies, func()) {
	if env.OPENAI_API_KEY == "" {
		log.Warn("OPENAI_API_KEY is not set, model calls will fail")
	}
	llm := openai.NewClient(openai.Config{
		APIKey:             env.OPENAI_API_KEY,
		BaseURL:            env.OPENAI_BASE_URL,
		Timeout:            time.Duration(env.OPENAI_TIMEOUT_SECONDS) * time.Second,
		Model:              env.OPENAI_MODEL,
		TranscriptionModel: env.OPENAI_TRANSCRIPTION_MODEL,
		ImageModel:         env.OPENAI_IMAGE_MODEL,
		RateLimiter:        openai.NewRateLimiter(openai.DefaultRateLimiterConfig()),
	})

	persona := services.Persona{
		AssistantName: env.ASSISTANT_NAME,
		UserName:      env.USER_NAME,
		UserFullName:  env.USER_FULL_NAME,
	}
	assistant := services.NewAssistant(llm, persona, log)
	processor := services.NewFileProcessor(assistant, services.NewPDFExtractor(log), persona.UserName, log)

	// Tokens signed with a random secret stop validating on restart
	jwtSecret := env.JWT_SECRET
	if jwtSecret == "" {
		log.Warn("JWT_SECRET is not set, using a random per-process secret")
		jwtSecret = uuid.New().String()
	}
	tokens := auth.NewJWTManager(auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 12 * time.Hour,
		Issuer: env.JWT_ISSUER,
	})

	if env.ADMIN_USERNAME == "" || env.ADMIN_PASSWORD == "" {
		log.Warn("ADMIN_USERNAME or ADMIN_PASSWORD is not set, admin login is disabled")
	}

	// Initialize Redis cache for brute force protection
	var bruteForce *middleware.BruteForceProtection
	closeDeps := func() {}
	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err != nil {
			log.Warn("Redis unavailable, admin login lockout disabled", "error", err)
		} else {
			bruteForce = middleware.NewBruteForceProtection(redisCache)
			closeDeps = func() {
				if err := redisCache.Close(); err != nil {
					log.Warn("Failed to close Redis", "error", err)
				}
			}
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := router.Dependencies{
		Store:     store,
		Chat:      services.NewChatService(store, assistant, log),
		Sessions:  services.NewSessionService(store, log),
		Files:     services.NewFileService(store, objects, processor, persona.UserName, log),
		Admin:     services.NewAdminService(store, services.AdminCredentials{Username: env.ADMIN_USERNAME, Password: env.ADMIN_PASSWORD}, tokens, log),
		Assistant: assistant,

		Tokens:            tokens,
		RequireAdminToken: env.ADMIN_REQUIRE_TOKEN,
		BruteForce:        bruteForce,

		Metrics:  middleware.NewMetrics(registry),
		Gatherer: registry,
	}
	return deps, closeDeps
}
