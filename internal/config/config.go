package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yukikurage/mars-colony-api/internal/constants"
)

type Config struct {
	AppAddr        string
	GinMode        string
	LogLevel       string
	DBDriver       string
	DBPath         string
	DBDSN          string
	DBLogLevel     string
	SessionStore   string
	RedisHost      string
	RedisPort      string
	SessionSecret  string
	AllowedOrigins []string
	PrivilegedIDs  []uint64
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	privileged, err := parseIDList(getEnv("PRIVILEGED_IDS", strconv.Itoa(constants.DefaultCaptainID)))
	if err != nil {
		return nil, fmt.Errorf("invalid PRIVILEGED_IDS: %w", err)
	}

	cfg := &Config{
		AppAddr:        getEnv("APP_ADDR", ":8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:         getEnv("DB_PATH", "mars_explorer.db"),
		DBDSN:          getEnv("DB_DSN", ""),
		DBLogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		SessionStore:   strings.ToLower(getEnv("SESSION_STORE", "cookie")),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		PrivilegedIDs:  privileged,
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required for driver %s", cfg.DBDriver)
	}

	switch cfg.SessionStore {
	case "cookie", "redis":
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDList(raw string) ([]uint64, error) {
	parts := splitList(raw)
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
