package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr     string
	LogLevel     string
	RateLimitRPS float64

	// Postgres is used when DBHost is set; otherwise the in-memory
	// store backs the API.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Optional Telegram alerting for HIGH severity flags.
	TelegramToken  string
	TelegramChatID int64
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		HTTPAddr:       getEnvWithDefault("HTTP_ADDR", ":8080"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		RateLimitRPS:   getEnvFloatWithDefault("RATE_LIMIT_RPS", 5),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getEnvWithDefault("DB_PORT", "5432"),
		DBUser:         getEnvWithDefault("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnvWithDefault("DB_NAME", "transpera"),
		DBSSLMode:      getEnvWithDefault("DB_SSLMODE", "disable"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),
	}

	return cfg, nil
}

// UsePostgres reports whether a database host was configured.
func (c *Config) UsePostgres() bool {
	return c.DBHost != ""
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
