package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	Environment     string
	MigrationsDir   string
	RunMigrations   bool
	MaxBodyBytes    int64
	EmailFrom       string
	EmailEnabled    bool
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	SMTPUseTLS      bool
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:            getEnv("APP_ADDR", ":5000"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		Environment:     getEnv("APP_ENV", "development"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:   getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		EmailFrom:       getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailEnabled:    getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:      getEnvBool("SMTP_USE_TLS", true),
		SessionTokenTTL: getEnvDuration("SESSION_TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:   getEnvDuration("RESET_TOKEN_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if c.SessionTokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	return nil
}
