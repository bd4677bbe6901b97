// Command migrate runs the GORM migrations against the configured database and exits.
//
// Usage: go run ./cmd/migrate
package main

import (
	"log"

	"github.com/MominRaza6762/SamraAi/config"
	"github.com/MominRaza6762/SamraAi/database"
	"github.com/MominRaza6762/SamraAi/model"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal("Failed to parse configuration:", err)
	}

	logger, err := applog.NewLogger(env.GO_ENV)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	// Initialize GORM connection
	store, err := database.StartGORM(env, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Health check
	if err := store.HealthCheck(); err != nil {
		logger.Fatal("Database health check failed", "error", err)
	}

	tables := []string{
		model.Session{}.TableName(),
		model.ChatMessage{}.TableName(),
		model.FileUpload{}.TableName(),
		model.CronJobLog{}.TableName(),
	}
	for _, table := range tables {
		if !store.GetDB().Migrator().HasTable(table) {
			logger.Fatal("Table missing after migration", "table", table)
		}
	}

	logger.Info("All migrations completed successfully", "tables", tables)
}
