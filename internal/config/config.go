package config

import (
	"os"
	"strconv"
	"time"

	"churnmate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI     AIConfig
	Server ServerConfig
	Data   DataConfig
}

// AIConfig holds chat-completion related settings
type AIConfig struct {
	OpenRouterKey string
	Model         string
	BaseURL       string
	SystemPrompt  string
	Timeout       time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds upload and analysis settings
type DataConfig struct {
	ChurnColumn   string
	MaxUploadMB   int64
	SampleRowSeed int64
}

// Load reads configuration from environment variables and validates it.
// The chat credential is required: the process fails fast at startup
// rather than serving a dashboard whose chat half cannot work.
func Load() (*Config, error) {
	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}

	config := &Config{
		AI:     *aiConfig,
		Server: *loadServerConfig(),
		Data:   *loadDataConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() (*AIConfig, error) {
	key := os.Getenv("OPENROUTER_API_KEY")
	if key == "" {
		return nil, errors.ConfigInvalid("OPENROUTER_API_KEY is required")
	}

	return &AIConfig{
		OpenRouterKey: key,
		Model:         getEnvOrDefault("LLM_MODEL", "mistralai/mistral-7b-instruct"),
		BaseURL:       getEnvOrDefault("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		SystemPrompt:  getEnvOrDefault("SYSTEM_PROMPT", ""),
		// Zero means the transport's own default applies.
		Timeout: getEnvDurationOrDefault("LLM_TIMEOUT", 0),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ChurnColumn:   getEnvOrDefault("CHURN_COLUMN", "Churn"),
		MaxUploadMB:   int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
		SampleRowSeed: int64(getEnvIntOrDefault("SAMPLE_SEED", 42)),
	}
}

func validateConfig(config *Config) error {
	if config.AI.OpenRouterKey == "" {
		return errors.ConfigInvalid("OpenRouter API key is required")
	}
	if config.AI.Model == "" {
		return errors.ConfigInvalid("LLM model identifier is required")
	}
	if config.Data.ChurnColumn == "" {
		return errors.ConfigInvalid("churn column name is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
