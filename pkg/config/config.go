package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	Port           string
	DatabaseURL    string
	AppEnv         string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string

	// Client
	APIURL         string
	APITimeout     time.Duration
	SessionBackend string // sqlite, file, redis or memory
	SessionDSN     string
	SessionFile    string
	SessionKey     string
	RedisAddr      string
	RedisPassword  string
	HistoryFile    string
	LogFile        string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:           getEnv("PORT", "5000"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:links.sqlite"),
		AppEnv:         getEnv("APP_ENV", "local"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		TokenTTL:       getDuration("TOKEN_TTL", 15*time.Minute),
		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"*"}),

		APIURL:         strings.TrimRight(getEnv("API_URL", "http://127.0.0.1:5000"), "/"),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),
		SessionBackend: getEnv("SESSION_BACKEND", "sqlite"),
		SessionDSN:     getEnv("SESSION_DSN", "file:linkshelf.db"),
		SessionFile:    getEnv("SESSION_FILE", defaultSessionFile()),
		SessionKey:     getEnv("SESSION_KEY", "token"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		HistoryFile:    getEnv("HISTORY_FILE", ""),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".linkshelf-token"
	}
	return dir + string(os.PathSeparator) + "linkshelf" + string(os.PathSeparator) + "token"
}
