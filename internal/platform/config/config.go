package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	Environment        string
	UIOrigin           string
	ChatWebhookURL     string
	ChatChannel        string
	WorkflowWebhookURL string
	DigestSendHour     int
	DigestInterval     time.Duration
	BirthdaysEnabled   bool
	AnniversaryEnabled bool
	AdvanceNoticeDays  int
	MaxBodyBytes       int64
	MetricsEnabled     bool
	RunMigrations      bool
	MigrationsDir      string
	OffboardingDir     string
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Environment:        getEnv("APP_ENV", "development"),
		UIOrigin:           getEnv("UI_ORIGIN", "*"),
		ChatWebhookURL:     getEnv("CHAT_WEBHOOK_URL", ""),
		ChatChannel:        getEnv("CHAT_CHANNEL", "#org-alerts"),
		WorkflowWebhookURL: getEnv("WORKFLOW_WEBHOOK_URL", ""),
		DigestSendHour:     getEnvInt("DIGEST_SEND_HOUR", 9),
		DigestInterval:     getEnvDuration("DIGEST_INTERVAL", 15*time.Minute),
		BirthdaysEnabled:   getEnvBool("BIRTHDAYS_ENABLED", true),
		AnniversaryEnabled: getEnvBool("ANNIVERSARIES_ENABLED", true),
		AdvanceNoticeDays:  getEnvInt("ADVANCE_NOTICE_DAYS", 0),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		OffboardingDir:     getEnv("OFFBOARDING_DIR", "storage/offboarding"),
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
	if c.DigestSendHour < 0 || c.DigestSendHour > 23 {
		return fmt.Errorf("DIGEST_SEND_HOUR must be between 0 and 23")
	}
	if c.AdvanceNoticeDays < 0 {
		return fmt.Errorf("ADVANCE_NOTICE_DAYS must not be negative")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		if c.UIOrigin == "*" {
			return fmt.Errorf("UI_ORIGIN must be pinned in production")
		}
	}
	return nil
}
