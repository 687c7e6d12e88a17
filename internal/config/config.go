package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Document store provider (opaque collaborator inputs)
	GoogleAPIKey    string `json:"google_api_key"`
	DriveFolderID   string `json:"drive_folder_id"`
	DriveWriteToken string `json:"drive_write_token"`

	// Cache TTLs
	ArticlesTTL      time.Duration `json:"articles_ttl"`
	AdsTTL           time.Duration `json:"ads_ttl"`
	ProfessionalsTTL time.Duration `json:"professionals_ttl"`
	NewsTTL          time.Duration `json:"news_ttl"`

	// Submission persistence. When RedisURL is set the Redis store is used
	// instead of the JSON file.
	SubmissionsFile string `json:"submissions_file"`
	RedisURL        string `json:"redis_url"`

	// Security
	AdminPassword string        `json:"admin_password"`
	SessionTTL    time.Duration `json:"session_ttl"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	return &Config{
		Port:            getEnv("PORT", "4000"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		DriveFolderID:   getEnv("GOOGLE_DRIVE_FOLDER_ID", "1hBWqhB0hVJvJH0o_7wQtuxoweXAIofJC"),
		DriveWriteToken: getEnv("DRIVE_WRITE_TOKEN", ""),

		ArticlesTTL:      getEnvAsDuration("ARTICLES_TTL", time.Hour),
		AdsTTL:           getEnvAsDuration("ADS_TTL", 30*time.Minute),
		ProfessionalsTTL: getEnvAsDuration("PROFESSIONALS_TTL", time.Hour),
		NewsTTL:          getEnvAsDuration("NEWS_TTL", 30*time.Minute),

		SubmissionsFile: getEnv("SUBMISSIONS_FILE", "./data/submissions.json"),
		RedisURL:        getEnv("REDIS_URL", ""),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
