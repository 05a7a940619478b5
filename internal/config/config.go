package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              string
	PostgresURI       string
	RedisURI          string
	EncryptionKey     string // base64-encoded 32 bytes; empty disables encryption
	ClassifierURL     string
	ClassifierTimeout time.Duration
	AllowedOrigins    []string
	Environment       string // ENV: production, development, etc.
}

func Load() *Config {
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	timeout := 10 * time.Second
	if s := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			timeout = time.Duration(v) * time.Second
		}
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		PostgresURI:       getEnv("POSTGRES_URI", "postgres://localhost:5432/moodlog?sslmode=disable"),
		RedisURI:          getEnv("REDIS_URI", "redis://localhost:6379/0"),
		EncryptionKey:     getEnv("ENCRYPTION_KEY", ""),
		ClassifierURL:     getEnv("CLASSIFIER_URL", "http://localhost:5001"),
		ClassifierTimeout: timeout,
		AllowedOrigins:    allowedOrigins,
		Environment:       strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
