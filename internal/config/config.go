package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings of the editor API
type Config struct {
	// Store selects the backends: "mongo" (MongoDB + Redis) or "memory"
	Store string

	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
	LogMode   string

	// undo/redo history per survey
	HistoryLimit int
	HistoryTTL   time.Duration

	CORSAllowedOrigins string
}

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Store:              getEnv("STORE", StoreMongo),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "surveybuilder"),
		RedisAddr:          strings.TrimPrefix(getEnv("REDIS_ADDR", "localhost:6379"), "redis://"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogMode:            getEnv("LOG_MODE", "development"),
		HistoryLimit:       getEnvInt("HISTORY_LIMIT", 50),
		HistoryTTL:         getEnvDuration("HISTORY_TTL", 24*time.Hour),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
