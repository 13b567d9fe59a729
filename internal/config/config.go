package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Chat       ChatConfig
	AI         AIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// ChatConfig bounds the grounded-response pipeline.
type ChatConfig struct {
	MaxExamples          int // example records in the grounded context
	FallbackLimit        int // example lines in the deterministic reply
	HistoryWindow        int // conversation turns forwarded to the collaborator
	LargeResultThreshold int // above this, refinement suggestions kick in
	MaxSuggestions       int
	PriceSampleCap       int   // price-band sample size
	PriceBandWidth       int64 // price-band width in whole currency units
}

// AIConfig holds text-generation collaborator configuration. Enabled is
// derived from the selected provider's key so the no-collaborator path is an
// explicit, injectable state rather than ambient process state.
type AIConfig struct {
	Provider    string // "openai" (any compatible endpoint) or "gemini"
	APIKey      string
	APIBase     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     int // seconds
	Enabled     bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	provider := getEnv("CHAT_PROVIDER", "openai")
	apiKey := getEnv("OPENAI_API_KEY", "")
	model := getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini")
	if provider == "gemini" {
		apiKey = getEnv("GEMINI_API_KEY", "")
		model = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	}

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "motorchat"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Chat: ChatConfig{
			MaxExamples:          getEnvAsInt("CHAT_MAX_EXAMPLES", 120),
			FallbackLimit:        getEnvAsInt("CHAT_FALLBACK_LIMIT", 5),
			HistoryWindow:        getEnvAsInt("CHAT_HISTORY_WINDOW", 6),
			LargeResultThreshold: getEnvAsInt("CHAT_LARGE_RESULT_THRESHOLD", 40),
			MaxSuggestions:       getEnvAsInt("CHAT_MAX_SUGGESTIONS", 6),
			PriceSampleCap:       getEnvAsInt("CHAT_PRICE_SAMPLE_CAP", 300),
			PriceBandWidth:       int64(getEnvAsInt("CHAT_PRICE_BAND_WIDTH", 20000)),
		},
		AI: AIConfig{
			Provider:    provider,
			APIKey:      apiKey,
			APIBase:     getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			Model:       model,
			Temperature: getEnvAsFloat("CHAT_TEMPERATURE", 0.6),
			MaxTokens:   getEnvAsInt("CHAT_MAX_TOKENS", 600),
			Timeout:     getEnvAsInt("CHAT_TIMEOUT", 30),
			Enabled:     apiKey != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns the PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
