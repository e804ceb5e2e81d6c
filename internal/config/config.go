package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// LLM provider settings
	LLMProvider string // "openai" (any OpenAI-compatible endpoint) or "ollama"
	APIKey      string
	ModelName   string
	APIBaseURL  string

	// Game settings
	GameTitle         string
	GameVersion       string
	MaxResponseLength int
	DefaultMood       float64
	Language          string // "en" or "zh"
	DebugMode         bool

	// Data paths
	WorldFile  string // optional override of the embedded world
	RosterFile string // optional override of the embedded roster
	PlotsDir   string

	RedisURL string
}

func Load() *Config {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		LLMProvider: getEnv("AI_PROVIDER", "openai"),
		APIKey:      getEnv("API_KEY", ""),
		ModelName:   getEnv("MODEL", "kimi-k2-0711-preview"),
		APIBaseURL:  getEnv("API_BASE_URL", "https://api.moonshot.cn/v1"),

		GameTitle:         getEnv("GAME_TITLE", "AI Chat Game"),
		GameVersion:       getEnv("GAME_VERSION", "2.0.0"),
		MaxResponseLength: getEnvInt("MAX_RESPONSE_LENGTH", 500),
		DefaultMood:       getEnvFloat("DEFAULT_MOOD", 0.5),
		Language:          getEnv("LANG_CODE", "en"),
		DebugMode:         getEnvBool("DEBUG_MODE", false),

		WorldFile:  getEnv("WORLD_FILE", ""),
		RosterFile: getEnv("ROSTER_FILE", ""),
		PlotsDir:   getEnv("PLOTS_DIR", "./plots"),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}
