// Package config provides configuration for the bot.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the bot configuration.
type Config struct {
	// Telegram
	BotToken string

	// Completion service
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	Model           string
	LLMTimeout      time.Duration
	Temperature     float64
	MaxTokens       int

	// Storage
	DataFile        string
	BackupDir       string
	ArchiveDatabase string

	// Ops server
	AdminPort int

	// Shutdown
	ShutdownGrace time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		Model:           getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
		MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 300),
		DataFile:        getEnv("DATA_FILE", "user_data.json"),
		BackupDir:       getEnv("BACKUP_DIR", "backups"),
		ArchiveDatabase: getEnv("ARCHIVE_DATABASE", "ipril.db"),
		AdminPort:       getEnvInt("ADMIN_PORT", 8080),
		ShutdownGrace:   time.Duration(getEnvInt("SHUTDOWN_GRACE_MS", 10000)) * time.Millisecond,
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
