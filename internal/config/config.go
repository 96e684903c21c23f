package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort            string
	GinMode            string
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	DBLogLevel         string
	SQLitePath         string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	TokenCacheTTL      time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string
	GuestPassword      string
	ResetDB            bool
}

func Load() *Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load(".env")

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		DBDriver:           driver,
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", defaultDBPort(driver)),
		DBUser:             getEnv("DB_USER", "joinuser"),
		DBPassword:         getEnv("DB_PASSWORD", "joinpassword"),
		DBName:             getEnv("DB_NAME", "join_board"),
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),
		DBLogLevel:         getEnv("DB_LOG_LEVEL", "warn"),
		SQLitePath:         getEnv("SQLITE_PATH", "join_board.db"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		TokenCacheTTL:      getEnvDuration("TOKEN_CACHE_TTL", 10*time.Minute),
		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200")),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		GuestPassword:      getEnv("GUEST_PASSWORD", "guest1234"),
		ResetDB:            getEnvBool("RESET_DB", false),
	}
}

func defaultDBPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
