package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"smilescript/backend/internal/logger"
)

const (
	AppName    = "SmileScript"
	AppVersion = "0.1.0"
)

// AI holds the summarization provider configuration.
// Enabled is false when no usable provider is configured; the engine then
// uses the deterministic fallback exclusively.
type AI struct {
	Enabled   bool
	Provider  string // openai or anthropic
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // provider calls per second
}

type Config struct {
	Addr      string
	DataDir   string
	DBPath    string
	StaticDir string
	LogLevel  string
	AI        AI
}

// Load reads configuration from a .env file (if present) and the environment.
// The returned value is immutable; components receive it at construction time.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("SMILESCRIPT_DATA_DIR", "./data")
	dbPath := getEnv("SMILESCRIPT_DB_PATH", filepath.Join(dataDir, "smilescript.db"))

	ai := AI{
		Enabled:   getEnvBool("SMILESCRIPT_AI_ENABLED", false),
		Provider:  getEnv("SMILESCRIPT_AI_PROVIDER", "openai"),
		APIKey:    os.Getenv("SMILESCRIPT_AI_API_KEY"),
		Model:     getEnv("SMILESCRIPT_AI_MODEL", "gpt-3.5-turbo"),
		BaseURL:   os.Getenv("SMILESCRIPT_AI_BASE_URL"),
		Timeout:   getEnvDuration("SMILESCRIPT_AI_TIMEOUT", 30*time.Second),
		RateLimit: getEnvInt("SMILESCRIPT_AI_RATE_LIMIT", 10),
	}
	if ai.Enabled && ai.APIKey == "" {
		logger.Warn("ai enabled without api key, using local summarization",
			"module", "config", "action", "load", "resource", "config", "result", "failed",
			"provider", ai.Provider)
		ai.Enabled = false
	}

	return Config{
		Addr:      getEnv("SMILESCRIPT_ADDR", ":8080"),
		DataDir:   filepath.Clean(dataDir),
		DBPath:    filepath.Clean(dbPath),
		StaticDir: getEnv("SMILESCRIPT_STATIC_DIR", "./web/dist"),
		LogLevel:  getEnv("SMILESCRIPT_LOG_LEVEL", "info"),
		AI:        ai,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
