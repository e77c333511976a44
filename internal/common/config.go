package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	OCR    OCRConfig
	LLM    LLMConfig
}

// ServerConfig holds the event receiver configuration
type ServerConfig struct {
	Port int
}

// StoreConfig holds record store configuration
type StoreConfig struct {
	Backend string // "sqlite" or "postgres"
	DSN     string // postgres DSN or sqlite path
	Table   string
}

// OCRConfig holds OCR service configuration
type OCRConfig struct {
	BaseURL      string
	MaxSyncBytes int64
	Timeout      time.Duration
}

// LLMConfig holds language model configuration
type LLMConfig struct {
	Provider     string // claude | mistral | titan | llama | auto
	AutoProvider string // policy target when Provider is "auto"
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	StrictSchema bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("PORT", 8080),
		},
		Store: StoreConfig{
			Backend: getEnv("RECORD_STORE", "sqlite"),
			DSN:     getEnv("RECORD_STORE_DSN", "./medintake.db"),
			Table:   getEnv("RECORD_TABLE", "document_records"),
		},
		OCR: OCRConfig{
			BaseURL:      getEnv("OCR_BASE_URL", ""),
			MaxSyncBytes: getEnvAsInt64("OCR_MAX_SYNC_BYTES", 10_000_000),
			Timeout:      getEnvAsDuration("OCR_TIMEOUT", 60*time.Second),
		},
		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", "claude"),
			AutoProvider: getEnv("LLM_AUTO_PROVIDER", ""),
			BaseURL:      getEnv("LLM_BASE_URL", ""),
			APIKey:       getEnv("LLM_API_KEY", ""),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
			StrictSchema: getEnvAsBool("LLM_STRICT_SCHEMA", false),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Store.Backend != "sqlite" && c.Store.Backend != "postgres" {
		return NewAppError("CONFIG_ERROR", "RECORD_STORE must be sqlite or postgres", ErrInvalidInput)
	}
	if c.Store.DSN == "" {
		return NewAppError("CONFIG_ERROR", "RECORD_STORE_DSN is required", ErrInvalidInput)
	}
	if c.OCR.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OCR_BASE_URL is required", ErrInvalidInput)
	}
	if c.LLM.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "LLM_BASE_URL is required", ErrInvalidInput)
	}
	return nil
}
