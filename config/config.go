package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string `env:"GO_ENV" envDefault:"development"`
	PORT   int    `env:"PORT" envDefault:"3000"`

	// Database Configuration. DATABASE_URL wins over the individual parts.
	DATABASE_URL string `env:"DATABASE_URL"`
	DB_USER_NAME string `env:"DB_USER_NAME"`
	DB_PASSWORD  string `env:"DB_PASSWORD"`
	DB_NAME      string `env:"DB_NAME"`
	DB_HOST      string `env:"DB_HOST" envDefault:"localhost"`
	DB_PORT      string `env:"DB_PORT" envDefault:"5432"`
	DB_SSL_MODE  string `env:"DB_SSL_MODE" envDefault:"disable"`

	// OpenAI Configuration
	OPENAI_API_KEY             string `env:"OPENAI_API_KEY"`
	OPENAI_BASE_URL            string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	OPENAI_MODEL               string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OPENAI_TRANSCRIPTION_MODEL string `env:"OPENAI_TRANSCRIPTION_MODEL" envDefault:"whisper-1"`
	OPENAI_IMAGE_MODEL         string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`
	OPENAI_TIMEOUT_SECONDS     int    `env:"OPENAI_TIMEOUT_SECONDS" envDefault:"120"`

	// Object Storage Configuration (any S3-compatible provider)
	STORAGE_BUCKET     string `env:"STORAGE_BUCKET"`
	STORAGE_REGION     string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	STORAGE_ENDPOINT   string `env:"STORAGE_ENDPOINT"`
	STORAGE_ACCESS_KEY string `env:"STORAGE_ACCESS_KEY"`
	STORAGE_SECRET_KEY string `env:"STORAGE_SECRET_KEY"`
	STORAGE_CDN_URL    string `env:"STORAGE_CDN_URL"`

	// Admin Configuration
	ADMIN_USERNAME      string `env:"ADMIN_USERNAME"`
	ADMIN_PASSWORD      string `env:"ADMIN_PASSWORD"`
	ADMIN_REQUIRE_TOKEN bool   `env:"ADMIN_REQUIRE_TOKEN" envDefault:"false"`

	// JWT Configuration
	JWT_SECRET string `env:"JWT_SECRET"`
	JWT_ISSUER string `env:"JWT_ISSUER" envDefault:"samraai-api"`

	// Redis Configuration
	REDIS_URL string `env:"REDIS_URL"`

	// Server behaviour
	CRON_ENABLED        bool     `env:"CRON_ENABLED" envDefault:"true"`
	ALLOWED_ORIGINS     []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3001,https://samraai.vercel.app"`
	RATE_LIMIT_REQUESTS int      `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`

	// Persona
	ASSISTANT_NAME string `env:"ASSISTANT_NAME" envDefault:"SamraAI"`
	USER_NAME      string `env:"USER_NAME" envDefault:"Samra"`
	USER_FULL_NAME string `env:"USER_FULL_NAME" envDefault:"Samra Ilyas"`
}

func Get() (*EnvironmentVariable, error) {
	envVariables := &EnvironmentVariable{}
	if err := env.Parse(envVariables); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return envVariables, nil
}

// IsProduction reports whether GO_ENV selects the production profile.
func (e *EnvironmentVariable) IsProduction() bool {
	return strings.EqualFold(e.GO_ENV, "production") || strings.EqualFold(e.GO_ENV, "prod")
}

// DSN returns the PostgreSQL connection string.
func (e *EnvironmentVariable) DSN() string {
	if e.DATABASE_URL != "" {
		return e.DATABASE_URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		e.DB_HOST,
		e.DB_USER_NAME,
		e.DB_PASSWORD,
		e.DB_NAME,
		e.DB_PORT,
		e.DB_SSL_MODE,
	)
}

// StorageConfigured reports whether enough object storage settings are present to upload files.
func (e *EnvironmentVariable) StorageConfigured() bool {
	return e.STORAGE_BUCKET != "" && e.STORAGE_ACCESS_KEY != "" && e.STORAGE_SECRET_KEY != ""
}
