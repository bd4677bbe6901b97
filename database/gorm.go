package database

import (
	"fmt"
	"time"

	"github.com/MominRaza6762/SamraAi/config"
	"github.com/MominRaza6762/SamraAi/model"
	applog "github.com/MominRaza6762/SamraAi/utils/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db  *gorm.DB
	log *applog.Logger
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable, log *applog.Logger) (*GORMStore, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(env.DSN()), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to PostgreSQL: %w", err)
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to PostgreSQL Database with GORM.", "host", env.DB_HOST)

	return NewGORMStore(db, log), nil
}

// NewGORMStore wraps an already opened connection. Tests use it with SQLite.
func NewGORMStore(db *gorm.DB, log *applog.Logger) *GORMStore {
	return &GORMStore{db: db, log: log.With("component", "GORMStore")}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	s.log.Info("Running GORM AutoMigrate")

	err := s.db.AutoMigrate(
		&model.Session{},
		&model.ChatMessage{},
		&model.FileUpload{},
		&model.CronJobLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	s.log.Info("GORM AutoMigrate completed successfully")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	s.log.Info("Closing GORM connection")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetDB exposes the underlying connection for tooling such as the migrate command
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}
