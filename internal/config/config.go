package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DatabaseURL string

	// Redis (entry claims; empty disables cross-instance claiming)
	RedisURL string

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Battle service
	BattleServiceURL string

	// Matchmaking
	DefaultRating     int           // seed rating stamped on new queue entries
	BaseRatingWindow  int           // acceptable rating diff at zero wait
	WindowPerMinute   int           // window growth per full minute waited
	WindowHardCap     int           // window never exceeds this
	MaxQueueWait      time.Duration // waiting entries older than this expire
	JanitorInterval   time.Duration
	TerminalRetention time.Duration // how long matched/expired rows are kept
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiration:      getDuration("JWT_EXPIRATION", 24*time.Hour),
		BattleServiceURL:   getEnv("BATTLE_SERVICE_URL", "http://localhost:8081"),
		DefaultRating:      getInt("MATCH_DEFAULT_RATING", 1200),
		BaseRatingWindow:   getInt("MATCH_BASE_WINDOW", 100),
		WindowPerMinute:    getInt("MATCH_WINDOW_PER_MINUTE", 20),
		WindowHardCap:      getInt("MATCH_WINDOW_CAP", 500),
		MaxQueueWait:       getDuration("MATCH_MAX_QUEUE_WAIT", 10*time.Minute),
		JanitorInterval:    getDuration("MATCH_JANITOR_INTERVAL", time.Minute),
		TerminalRetention:  getDuration("MATCH_TERMINAL_RETENTION", time.Hour),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
