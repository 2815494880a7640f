// Package config loads engine settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP settings
	Port string

	// AI generation settings
	EnableAIGeneration bool
	OpenAIAPIKey       string
	OpenAIModel        string
	GeminiAPIKey       string
	AITimeout          time.Duration
	MinAIResponseChars int
	MaxOpenAIRequests  int // daily cap, 0 = unlimited
	MaxGeminiRequests  int
	MaxAIRequests      int // combined daily cap
	AICacheTTL         time.Duration

	// RSS settings
	FeedsConfigPath string
	ArticleLimit    int // per-feed default limit

	// Content enhancement settings
	EnhancementEnabled  bool
	MinSummaryLength    int
	MaxSummaryLength    int
	MinEnhancedLength   int
	MinEnhancementRatio float64
	ExtractionTimeout   time.Duration

	// Storage settings
	DataDir     string
	DatabaseURL string // optional Postgres post archive

	// Scheduler settings
	ScheduleInterval time.Duration // 0 disables the scheduled post job

	// Telegram announcements (optional)
	TelegramToken  string
	TelegramChatID string

	// App settings
	Debug bool
}

func Load() *Config {
	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8000"),
		OpenAIModel:         getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:           time.Duration(getEnvIntOrDefault("AI_TIMEOUT_SECONDS", 15)) * time.Second,
		MinAIResponseChars:  getEnvIntOrDefault("MIN_AI_RESPONSE_CHARS", 50),
		MaxOpenAIRequests:   getEnvIntOrDefault("MAX_OPENAI_REQUESTS", 50),
		MaxGeminiRequests:   getEnvIntOrDefault("MAX_GEMINI_REQUESTS", 50),
		MaxAIRequests:       getEnvIntOrDefault("MAX_AI_REQUESTS", 100),
		AICacheTTL:          time.Duration(getEnvIntOrDefault("AI_CACHE_TTL_HOURS", 24)) * time.Hour,
		FeedsConfigPath:     getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		ArticleLimit:        getEnvIntOrDefault("ARTICLE_LIMIT", 5),
		MinSummaryLength:    getEnvIntOrDefault("MIN_SUMMARY_LENGTH", 200),
		MaxSummaryLength:    getEnvIntOrDefault("MAX_SUMMARY_LENGTH", 800),
		MinEnhancedLength:   getEnvIntOrDefault("MIN_ENHANCED_LENGTH", 300),
		MinEnhancementRatio: getEnvFloatOrDefault("MIN_ENHANCEMENT_RATIO", 1.5),
		ExtractionTimeout:   time.Duration(getEnvIntOrDefault("EXTRACTION_TIMEOUT_SECONDS", 10)) * time.Second,
		DataDir:             getEnvOrDefault("DATA_DIR", "data"),
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	// Enhancement is on unless explicitly switched off.
	cfg.EnhancementEnabled = os.Getenv("ENHANCEMENT_ENABLED") != "false"

	// AI generation needs both the flag and at least one credential;
	// a missing key silently leaves the engine in template-only mode.
	if os.Getenv("ENABLE_AI_GENERATION") == "true" {
		cfg.EnableAIGeneration = cfg.OpenAIAPIKey != "" || cfg.GeminiAPIKey != ""
	}

	if v := os.Getenv("SCHEDULE_INTERVAL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ScheduleInterval = time.Duration(val) * time.Hour
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg
}

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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
